package models

// TargetKind discriminates what a vote or report points at.
type TargetKind string

const (
	TargetNote    TargetKind = "note"
	TargetComment TargetKind = "comment"
)

// Target is the single entity (a note or a comment) a vote or report refers
// to. It is a tagged union validated at construction, so a Target obtained
// from NewTarget always points at exactly one kind.
type Target struct {
	kind TargetKind
	id   uint
}

// NewTarget builds a Target from the nullable note_id/comment_id pair used on
// the wire. Supplying both or neither fails with ErrInvalidTarget.
func NewTarget(noteID, commentID *uint) (Target, error) {
	switch {
	case noteID != nil && commentID != nil:
		return Target{}, ErrInvalidTarget
	case noteID != nil:
		return NoteTarget(*noteID), nil
	case commentID != nil:
		return CommentTarget(*commentID), nil
	default:
		return Target{}, ErrInvalidTarget
	}
}

// NoteTarget returns a Target pointing at the given note.
func NoteTarget(id uint) Target {
	return Target{kind: TargetNote, id: id}
}

// CommentTarget returns a Target pointing at the given comment.
func CommentTarget(id uint) Target {
	return Target{kind: TargetComment, id: id}
}

// Kind reports which entity kind the target points at.
func (t Target) Kind() TargetKind { return t.kind }

// ID returns the id of the targeted entity.
func (t Target) ID() uint { return t.id }

// Column returns the votes/reports column holding the target id. The value
// is one of two fixed identifiers and is safe to splice into a query.
func (t Target) Column() string {
	if t.kind == TargetComment {
		return "comment_id"
	}
	return "note_id"
}

// NoteID returns the note id as a nullable foreign key, nil for comment targets.
func (t Target) NoteID() *uint {
	if t.kind != TargetNote {
		return nil
	}
	id := t.id
	return &id
}

// CommentID returns the comment id as a nullable foreign key, nil for note targets.
func (t Target) CommentID() *uint {
	if t.kind != TargetComment {
		return nil
	}
	id := t.id
	return &id
}
