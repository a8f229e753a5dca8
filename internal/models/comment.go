package models

import "time"

// Comment represents a reply to a note.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NoteID    uint      `gorm:"not null;index" json:"note_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Votes         []Vote         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reports       []Report       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
