package models

import "time"

// Favorite bookmarks a note for a user. The composite primary key guarantees
// a user can favorite a given note at most once.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	NoteID    uint      `gorm:"primaryKey;autoIncrement:false" json:"note_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Note Note `gorm:"foreignKey:NoteID" json:"-"`
}

// TableName names the join table explicitly instead of GORM's default.
func (Favorite) TableName() string { return "user_note_favorites" }
