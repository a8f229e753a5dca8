package models

import "time"

// Notification is a persisted inbox entry for a user about a note or a
// comment. Rows are written and cascade-deleted with their target; there is
// no delivery mechanism.
type Notification struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RecipientUserID uint      `gorm:"not null;index" json:"recipient_user_id"`
	NoteID          *uint     `gorm:"index" json:"note_id"`
	CommentID       *uint     `gorm:"index" json:"comment_id"`
	IsRead          bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}
