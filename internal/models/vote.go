package models

import "time"

// Allowed vote types.
const (
	VoteUp   = 1
	VoteDown = -1
)

// ValidVoteType reports whether v is one of the two allowed vote values.
func ValidVoteType(v int) bool {
	return v == VoteUp || v == VoteDown
}

// Vote represents a user's up/down vote on a note or a comment. Exactly one
// of NoteID/CommentID is set. The schema cannot express that by itself, so
// the invariant is enforced at construction (models.Target) and by the two
// partial unique indexes below: NULLs compare distinct in both Postgres and
// SQLite, which makes (user_id, note_id) and (user_id, comment_id) each act
// as a one-vote-per-target guard without colliding with the other kind.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_note;uniqueIndex:idx_votes_user_comment" json:"user_id"`
	NoteID    *uint     `gorm:"uniqueIndex:idx_votes_user_note" json:"note_id"`
	CommentID *uint     `gorm:"uniqueIndex:idx_votes_user_comment" json:"comment_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Target resolves the vote's polymorphic foreign-key pair into a Target.
func (v *Vote) Target() (Target, error) {
	return NewTarget(v.NoteID, v.CommentID)
}
