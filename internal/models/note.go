package models

import "time"

// Note represents a shared note. Anonymous notes keep their owner row but
// must never expose owner identity through serialization.
type Note struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships. Dependents are removed transactionally on delete,
	// see repository.NoteRepository.Delete.
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Tags          []Tag          `gorm:"many2many:note_tags" json:"-"`
	Comments      []Comment      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Votes         []Vote         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reports       []Report       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FavoritedBy   []Favorite     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
