package server

import (
	"net/http"
	"testing"

	"notewall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNote(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, srv, db, "writer")

	t.Run("CreatesWithTags", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"title":   "My first note",
			"content": "Hello world",
			"tags":    []string{"advice", "story"},
		}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.NoteResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "My first note", body.Title)
		assert.Len(t, body.Tags, 2)
		require.NotNil(t, body.UserInfo)
		assert.Equal(t, "writer", body.UserInfo.Username)
	})

	t.Run("AnonymousNoteHidesAuthor", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"title":        "Secret",
			"content":      "Nobody knows",
			"is_anonymous": true,
		}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.NoteResponse
		decodeBody(t, resp, &body)
		assert.True(t, body.IsAnonymous)
		assert.Nil(t, body.UserInfo)
	})

	t.Run("SanitizesContent", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"title":   "Sneaky",
			"content": `hello <script>alert("x")</script>world`,
		}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.NoteResponse
		decodeBody(t, resp, &body)
		assert.NotContains(t, body.Content, "<script>")
		assert.Contains(t, body.Content, "hello")
	})

	t.Run("MissingTitleRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"content": "no title",
		}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"title": "x", "content": "y",
		}, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetNotes(t *testing.T) {
	srv, app, db := setupTestServer(t)
	author, _ := createUserWithToken(t, srv, db, "writer")

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, db.Create(&models.Note{Title: title, Content: "c", UserID: author.ID}).Error)
	}

	t.Run("ListsAll", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.NoteResponse
		decodeBody(t, resp, &body)
		assert.Len(t, body, 3)
	})

	t.Run("Paginates", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes?limit=2&offset=2", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.NoteResponse
		decodeBody(t, resp, &body)
		assert.Len(t, body, 1)
	})
}

func TestGetNote(t *testing.T) {
	srv, app, db := setupTestServer(t)
	author, _ := createUserWithToken(t, srv, db, "writer")
	note := &models.Note{Title: "n", Content: "c", UserID: author.ID}
	require.NoError(t, db.Create(note).Error)

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/1", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/999", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadID", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/abc", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSearchNotes(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, srv, db, "writer")

	post := func(title string, tags []string) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notes", map[string]any{
			"title": title, "content": "c", "tags": tags,
		}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	post("advice note", []string{"Advice"})
	post("story note", []string{"story"})
	post("double tagged", []string{"advice-column", "good-advice"})

	t.Run("EmptyQueryRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/search", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/search?tag=ADVICE", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.NoteResponse
		decodeBody(t, resp, &body)
		require.Len(t, body, 2)
		assert.Equal(t, "advice note", body[0].Title)
		assert.Equal(t, "double tagged", body[1].Title)
	})

	t.Run("MultipleMatchingTagsYieldOneResult", func(t *testing.T) {
		// Both tags of "double tagged" contain "advice".
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/search?tag=advice", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.NoteResponse
		decodeBody(t, resp, &body)
		seen := map[string]int{}
		for _, n := range body {
			seen[n.Title]++
		}
		assert.Equal(t, 1, seen["double tagged"])
	})

	t.Run("NoMatchIsEmptyList", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notes/search?tag=nothing", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.NoteResponse
		decodeBody(t, resp, &body)
		assert.Empty(t, body)
	})
}

func TestTagEndpoints(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, srv, db, "regular")
	admin, adminToken := createUserWithToken(t, srv, db, "curator")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).
		Update("role", models.RoleAdmin).Error)

	t.Run("CreateRequiresAdmin", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/tags",
			map[string]any{"name": "curated"}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("AdminCreatesTag", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/tags",
			map[string]any{"name": "curated", "color_hex": "#336699"}, adminToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.Tag
		decodeBody(t, resp, &body)
		assert.Equal(t, "curated", body.Name)
		assert.Equal(t, "#336699", body.ColorHex)
	})

	t.Run("DuplicateNameConflicts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/tags",
			map[string]any{"name": "curated"}, adminToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("ListIsPublic", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/tags", nil, ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Tag
		decodeBody(t, resp, &body)
		assert.Len(t, body, 1)
	})
}

func TestGetMyNotes(t *testing.T) {
	srv, app, db := setupTestServer(t)
	mine, myToken := createUserWithToken(t, srv, db, "mine")
	other, _ := createUserWithToken(t, srv, db, "other")

	require.NoError(t, db.Create(&models.Note{Title: "mine 1", Content: "c", UserID: mine.ID}).Error)
	require.NoError(t, db.Create(&models.Note{Title: "hidden", Content: "c", UserID: mine.ID, IsAnonymous: true}).Error)
	require.NoError(t, db.Create(&models.Note{Title: "theirs", Content: "c", UserID: other.ID}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me/notes", nil, myToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.NoteResponse
	decodeBody(t, resp, &body)
	// Own anonymous notes are listed; other users' notes are not.
	require.Len(t, body, 2)
	for _, n := range body {
		assert.Equal(t, mine.ID, n.UserID)
	}
}

func TestUpdateNote(t *testing.T) {
	srv, app, db := setupTestServer(t)
	owner, ownerToken := createUserWithToken(t, srv, db, "owner")
	_, otherToken := createUserWithToken(t, srv, db, "other")

	note := &models.Note{Title: "before", Content: "c", UserID: owner.ID}
	require.NoError(t, db.Create(note).Error)

	t.Run("OwnerCanUpdate", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/notes/1", map[string]any{
			"title": "after",
		}, ownerToken))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.NoteResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "after", body.Title)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/notes/1", map[string]any{
			"title": "hijacked",
		}, otherToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeleteNote(t *testing.T) {
	srv, app, db := setupTestServer(t)
	owner, ownerToken := createUserWithToken(t, srv, db, "owner")
	_, otherToken := createUserWithToken(t, srv, db, "other")

	note := &models.Note{Title: "doomed", Content: "c", UserID: owner.ID}
	require.NoError(t, db.Create(note).Error)

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/notes/1", nil, otherToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("OwnerCanDelete", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/notes/1", nil, ownerToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/notes/1", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
