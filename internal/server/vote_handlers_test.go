package server

import (
	"net/http"
	"testing"

	"notewall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	srv, app, db := setupTestServer(t)

	author, _ := createUserWithToken(t, srv, db, "author")
	_, voterToken := createUserWithToken(t, srv, db, "voter")

	note := &models.Note{Title: "n", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(note).Error)
	comment := &models.Comment{NoteID: note.ID, UserID: author.ID, Content: "hi"}
	require.NoError(t, db.Create(comment).Error)

	t.Run("FirstVoteCreated", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "added", body["action"])
	})

	t.Run("SameVoteAgainRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("OppositeVoteUpdated", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": -1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "updated", body["action"])
	})

	t.Run("BothTargetsRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "comment_id": comment.ID, "vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NeitherTargetRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidVoteTypeRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": 5}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingNoteIs404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": 99999, "vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": 1}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("CommentVote", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"comment_id": comment.ID, "vote_type": 1}, voterToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestGetVoteCount(t *testing.T) {
	srv, app, db := setupTestServer(t)

	author, _ := createUserWithToken(t, srv, db, "author")
	note := &models.Note{Title: "n", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(note).Error)

	// Three voters: two up, one down.
	for i, vt := range []int{1, 1, -1} {
		voter, token := createUserWithToken(t, srv, db, "voter"+string(rune('a'+i)))
		_ = voter
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": vt}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("TallyAndTotal", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/votes/count?note_id=1", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			PositiveVotes int `json:"positive_votes"`
			NegativeVotes int `json:"negative_votes"`
			TotalVotes    int `json:"total_votes"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, 2, body.PositiveVotes)
		assert.Equal(t, 1, body.NegativeVotes)
		assert.Equal(t, 1, body.TotalVotes)
	})

	t.Run("NoTargetRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/votes/count", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetMyVote(t *testing.T) {
	srv, app, db := setupTestServer(t)

	author, _ := createUserWithToken(t, srv, db, "author")
	_, voterToken := createUserWithToken(t, srv, db, "voter")
	note := &models.Note{Title: "n", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(note).Error)

	t.Run("ZeroBeforeVoting", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/votes/my-vote?note_id=1", nil, voterToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			VoteType int `json:"vote_type"`
		}
		decodeBody(t, resp, &body)
		assert.Zero(t, body.VoteType)
	})

	t.Run("ReflectsCastVote", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/vote",
			map[string]any{"note_id": note.ID, "vote_type": -1}, voterToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/votes/my-vote?note_id=1", nil, voterToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			VoteType int `json:"vote_type"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, -1, body.VoteType)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/votes/my-vote?note_id=1", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
