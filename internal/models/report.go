package models

import "time"

// Report statuses.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// Report is a user complaint about a note or a comment. It shares the
// nullable dual-FK target shape with Vote; construction goes through
// models.Target so both-set/neither-set rows cannot be created.
type Report struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NoteID         *uint     `gorm:"index" json:"note_id"`
	CommentID      *uint     `gorm:"index" json:"comment_id"`
	ReporterUserID uint      `gorm:"not null;index" json:"reporter_user_id"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
	Status         string    `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
