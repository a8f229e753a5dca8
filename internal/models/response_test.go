package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNote() *Note {
	noteID := uint(1)
	return &Note{
		ID:      1,
		UserID:  10,
		Title:   "A note",
		Content: "Body",
		User: User{
			ID:        10,
			Username:  "writer",
			FirstName: "W",
			LastName:  "R",
		},
		Tags: []Tag{{ID: 1, Name: "advice"}},
		Comments: []Comment{
			{ID: 1, NoteID: 1, UserID: 20, Content: "hi", User: User{ID: 20, Username: "reader"}},
		},
		Votes: []Vote{
			{ID: 1, UserID: 20, NoteID: &noteID, VoteType: VoteUp},
			{ID: 2, UserID: 21, NoteID: &noteID, VoteType: VoteUp},
			{ID: 3, UserID: 22, NoteID: &noteID, VoteType: VoteDown},
		},
	}
}

func TestNewNoteResponse(t *testing.T) {
	t.Run("TalliesVotes", func(t *testing.T) {
		resp := NewNoteResponse(sampleNote())
		assert.Equal(t, 2, resp.PositiveVotes)
		assert.Equal(t, 1, resp.NegativeVotes)
		assert.Equal(t, 1, resp.CommentsCount)
	})

	t.Run("OwnerIdentityWhenNotAnonymous", func(t *testing.T) {
		resp := NewNoteResponse(sampleNote())
		require.NotNil(t, resp.UserInfo)
		assert.Equal(t, uint(10), resp.UserInfo.ID)
		assert.Equal(t, "writer", resp.UserInfo.Username)
	})

	t.Run("AnonymousNoteRedactsOwner", func(t *testing.T) {
		n := sampleNote()
		n.IsAnonymous = true
		resp := NewNoteResponse(n)
		assert.Nil(t, resp.UserInfo)
		assert.True(t, resp.IsAnonymous)
	})

	t.Run("EmptyCollectionsNotNil", func(t *testing.T) {
		n := &Note{ID: 2, UserID: 10, User: User{ID: 10, Username: "writer"}}
		resp := NewNoteResponse(n)
		assert.NotNil(t, resp.Tags)
		assert.NotNil(t, resp.Comments)
		assert.NotNil(t, resp.Reports)
		assert.NotNil(t, resp.FavoritedBy)
		assert.NotNil(t, resp.Votes)
		assert.Zero(t, resp.PositiveVotes)
		assert.Zero(t, resp.NegativeVotes)
	})
}

func TestNewCommentResponse(t *testing.T) {
	t.Run("WithAuthor", func(t *testing.T) {
		c := &Comment{
			ID: 1, NoteID: 1, UserID: 20, Content: "hi",
			User: User{ID: 20, Username: "reader", FirstName: "Re", LastName: "Ader"},
		}
		resp := NewCommentResponse(c)
		assert.Equal(t, "reader", resp.Username)
		assert.Equal(t, "Re", resp.FirstName)
	})

	t.Run("DeletedAuthorFallsBack", func(t *testing.T) {
		c := &Comment{ID: 1, NoteID: 1, UserID: 20, Content: "hi"}
		resp := NewCommentResponse(c)
		assert.Equal(t, DeletedUserPlaceholder, resp.Username)
		assert.Empty(t, resp.FirstName)
		assert.Empty(t, resp.LastName)
	})
}
