package models

import "time"

// DeletedUserPlaceholder is shown as the author of comments whose user row
// no longer exists. A broken reference is tolerated, not an error.
const DeletedUserPlaceholder = "deleted user"

// UserInfo is the owner identity block attached to non-anonymous notes.
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TagResponse is the {id, name} pair attached to serialized notes.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CommentResponse is a comment together with its author's display fields.
type CommentResponse struct {
	ID        uint      `json:"id"`
	NoteID    uint      `json:"note_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// FavoriteResponse is a favorite row with the favoriting user's name.
type FavoriteResponse struct {
	UserID    uint      `json:"user_id"`
	NoteID    uint      `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
}

// NoteResponse is the aggregated wire representation of a note. UserInfo is
// nil whenever the note is anonymous; no call site may bypass that.
type NoteResponse struct {
	ID            uint              `json:"id"`
	UserID        uint              `json:"user_id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	IsAnonymous   bool              `json:"is_anonymous"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Tags          []TagResponse     `json:"tags"`
	Comments      []CommentResponse `json:"comments"`
	Reports       []Report          `json:"reports"`
	FavoritedBy   []FavoriteResponse `json:"favorited_by"`
	Votes         []Vote            `json:"votes"`
	UserInfo      *UserInfo         `json:"user_info"`
	PositiveVotes int               `json:"positive_votes"`
	NegativeVotes int               `json:"negative_votes"`
	CommentsCount int               `json:"comments_count"`
}

// NewCommentResponse serializes a comment, falling back to a placeholder
// author when the user record is missing.
func NewCommentResponse(c *Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		NoteID:    c.NoteID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Username:  DeletedUserPlaceholder,
	}
	if c.User.ID != 0 {
		resp.Username = c.User.Username
		resp.FirstName = c.User.FirstName
		resp.LastName = c.User.LastName
	}
	return resp
}

// NewFavoriteResponse serializes a favorite row.
func NewFavoriteResponse(f *Favorite) FavoriteResponse {
	return FavoriteResponse{
		UserID:    f.UserID,
		NoteID:    f.NoteID,
		CreatedAt: f.CreatedAt,
		Username:  f.User.Username,
	}
}

// NewNoteResponse composes a note with its tags, comments, reports,
// favorites, votes and derived vote tallies. This is the only serialization
// path for notes; the anonymity redaction lives here and nowhere else.
func NewNoteResponse(n *Note) NoteResponse {
	tags := make([]TagResponse, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name})
	}

	comments := make([]CommentResponse, 0, len(n.Comments))
	for i := range n.Comments {
		comments = append(comments, NewCommentResponse(&n.Comments[i]))
	}

	favorites := make([]FavoriteResponse, 0, len(n.FavoritedBy))
	for i := range n.FavoritedBy {
		favorites = append(favorites, NewFavoriteResponse(&n.FavoritedBy[i]))
	}

	positive, negative := 0, 0
	votes := make([]Vote, 0, len(n.Votes))
	for _, v := range n.Votes {
		switch v.VoteType {
		case VoteUp:
			positive++
		case VoteDown:
			negative++
		}
		votes = append(votes, v)
	}

	var userInfo *UserInfo
	if !n.IsAnonymous && n.User.ID != 0 {
		userInfo = &UserInfo{
			ID:        n.User.ID,
			Username:  n.User.Username,
			FirstName: n.User.FirstName,
			LastName:  n.User.LastName,
		}
	}

	reports := n.Reports
	if reports == nil {
		reports = make([]Report, 0)
	}

	return NoteResponse{
		ID:            n.ID,
		UserID:        n.UserID,
		Title:         n.Title,
		Content:       n.Content,
		IsAnonymous:   n.IsAnonymous,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
		Tags:          tags,
		Comments:      comments,
		Reports:       reports,
		FavoritedBy:   favorites,
		Votes:         votes,
		UserInfo:      userInfo,
		PositiveVotes: positive,
		NegativeVotes: negative,
		CommentsCount: len(comments),
	}
}

// NewNoteResponses maps a note list through NewNoteResponse.
func NewNoteResponses(notes []*Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
