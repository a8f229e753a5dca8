package repository

import (
	"context"
	"testing"

	"notewall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Note{},
		&models.Comment{},
		&models.Vote{},
		&models.Report{},
		&models.Notification{},
		&models.Favorite{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestNote(t *testing.T, db *gorm.DB, userID uint) *models.Note {
	t.Helper()
	note := &models.Note{
		Title:   "Test note",
		Content: "Test content",
		UserID:  userID,
	}
	require.NoError(t, db.Create(note).Error)
	return note
}

func createTestComment(t *testing.T, db *gorm.DB, noteID, userID uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		NoteID:  noteID,
		UserID:  userID,
		Content: "Test comment",
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestVoteRepositoryCast(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	note := createTestNote(t, db, author.ID)

	t.Run("FirstVoteAdds", func(t *testing.T) {
		action, err := repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), models.VoteUp)
		assert.NoError(t, err)
		assert.Equal(t, VoteActionAdded, action)

		var count int64
		db.Model(&models.Vote{}).Where("user_id = ? AND note_id = ?", voter.ID, note.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("SameVoteTwiceFails", func(t *testing.T) {
		_, err := repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), models.VoteUp)
		assert.ErrorIs(t, err, models.ErrDuplicateVote)
	})

	t.Run("OppositeVoteUpdatesInPlace", func(t *testing.T) {
		action, err := repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), models.VoteDown)
		assert.NoError(t, err)
		assert.Equal(t, VoteActionUpdated, action)

		// Still exactly one row for this (user, note) pair.
		var count int64
		db.Model(&models.Vote{}).Where("user_id = ? AND note_id = ?", voter.ID, note.ID).Count(&count)
		assert.Equal(t, int64(1), count)

		vt, err := repo.UserVote(ctx, voter.ID, models.NoteTarget(note.ID))
		assert.NoError(t, err)
		assert.Equal(t, models.VoteDown, vt)
	})

	t.Run("InvalidVoteType", func(t *testing.T) {
		_, err := repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), 0)
		assert.ErrorIs(t, err, models.ErrInvalidVoteType)

		_, err = repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), 2)
		assert.ErrorIs(t, err, models.ErrInvalidVoteType)
	})

	t.Run("MissingTarget", func(t *testing.T) {
		_, err := repo.Cast(ctx, voter.ID, models.NoteTarget(99999), models.VoteUp)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)

		_, err = repo.Cast(ctx, voter.ID, models.CommentTarget(99999), models.VoteUp)
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("CommentVoteIndependentOfNoteVote", func(t *testing.T) {
		comment := createTestComment(t, db, note.ID, author.ID)

		// Voter already has a note vote; a comment vote is a separate target.
		action, err := repo.Cast(ctx, voter.ID, models.CommentTarget(comment.ID), models.VoteUp)
		assert.NoError(t, err)
		assert.Equal(t, VoteActionAdded, action)
	})

	t.Run("UniqueIndexBacksTheInvariant", func(t *testing.T) {
		noteID := note.ID
		err := db.Create(&models.Vote{
			UserID:   voter.ID,
			NoteID:   &noteID,
			VoteType: models.VoteUp,
		}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

func TestVoteRepositoryCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	note := createTestNote(t, db, author.ID)

	voters := make([]*models.User, 0, 5)
	for _, name := range []string{"v1", "v2", "v3", "v4", "v5"} {
		voters = append(voters, createTestUser(t, db, name))
	}

	// 3 up, 2 down
	for i, v := range voters {
		vt := models.VoteUp
		if i >= 3 {
			vt = models.VoteDown
		}
		_, err := repo.Cast(ctx, v.ID, models.NoteTarget(note.ID), vt)
		require.NoError(t, err)
	}

	positive, negative, err := repo.Count(ctx, models.NoteTarget(note.ID))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), positive)
	assert.Equal(t, int64(2), negative)

	t.Run("FlipMovesTheTally", func(t *testing.T) {
		// User A upvoted; user B had downvoted and now flips to up.
		_, err := repo.Cast(ctx, voters[3].ID, models.NoteTarget(note.ID), models.VoteUp)
		require.NoError(t, err)

		positive, negative, err := repo.Count(ctx, models.NoteTarget(note.ID))
		assert.NoError(t, err)
		assert.Equal(t, int64(4), positive)
		assert.Equal(t, int64(1), negative)
	})

	t.Run("UnvotedTargetCountsZero", func(t *testing.T) {
		other := createTestNote(t, db, author.ID)
		positive, negative, err := repo.Count(ctx, models.NoteTarget(other.ID))
		assert.NoError(t, err)
		assert.Zero(t, positive)
		assert.Zero(t, negative)
	})
}

func TestVoteRepositoryUserVote(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	note := createTestNote(t, db, author.ID)

	t.Run("NoVoteIsZeroNotError", func(t *testing.T) {
		vt, err := repo.UserVote(ctx, voter.ID, models.NoteTarget(note.ID))
		assert.NoError(t, err)
		assert.Zero(t, vt)
	})

	t.Run("ReturnsCastVote", func(t *testing.T) {
		_, err := repo.Cast(ctx, voter.ID, models.NoteTarget(note.ID), models.VoteDown)
		require.NoError(t, err)

		vt, err := repo.UserVote(ctx, voter.ID, models.NoteTarget(note.ID))
		assert.NoError(t, err)
		assert.Equal(t, models.VoteDown, vt)
	})
}
