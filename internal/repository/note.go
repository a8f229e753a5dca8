package repository

import (
	"context"
	"errors"
	"strings"

	"notewall/internal/models"
	"notewall/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note, tagNames []string) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	List(ctx context.Context, limit, offset int) ([]*models.Note, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Note, error)
	SearchByTag(ctx context.Context, query string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note, tagNames []string) error
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// withAggregates preloads everything NoteResponse serializes.
func withAggregates(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			// Serialized in the order the tags first entered the system;
			// without an explicit order the join preload is driver-dependent.
			return db.Order("tags.id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.User").
		Preload("Votes").
		Preload("Reports").
		Preload("FavoritedBy").
		Preload("FavoritedBy.User")
}

// Create persists the note and its tag associations in one transaction.
// Tags that do not exist yet are created; nothing is committed unless every
// tag attaches.
func (r *noteRepository) Create(ctx context.Context, note *models.Note, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		note.Tags = tags
		return tx.Create(note).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := withAggregates(r.db.WithContext(ctx)).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Note", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context, limit, offset int) ([]*models.Note, error) {
	var notes []*models.Note
	err := withAggregates(r.db.WithContext(ctx)).
		Order("notes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notes, nil
}

func (r *noteRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Note, error) {
	var notes []*models.Note
	err := withAggregates(r.db.WithContext(ctx)).
		Where("notes.user_id = ?", userID).
		Order("notes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notes, nil
}

// SearchByTag returns the distinct set of notes attached to any tag whose
// name contains the query, case-insensitively. Results are ordered by note
// id ascending so a note with several matching tags appears once and output
// stays deterministic.
func (r *noteRepository) SearchByTag(ctx context.Context, query string) ([]*models.Note, error) {
	defer observability.TrackQuery("search_by_tag", "notes")()
	pattern := "%" + strings.ToLower(query) + "%"

	var notes []*models.Note
	err := withAggregates(r.db.WithContext(ctx)).
		Distinct("notes.*").
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("LOWER(tags.name) LIKE ?", pattern).
		Order("notes.id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notes, nil
}

// Update saves the note's own columns and, when tagNames is non-nil,
// replaces its tag set inside the same transaction.
func (r *noteRepository) Update(ctx context.Context, note *models.Note, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The note usually arrives with associations preloaded; only its own
		// columns are saved here.
		if err := tx.Omit(clause.Associations).Save(note).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		return tx.Model(note).Association("Tags").Replace(tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a note and every dependent row (comments and their
// dependents, votes, reports, notifications, favorites, tag links) as a
// single atomic unit.
func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := func() *gorm.DB {
			return tx.Model(&models.Comment{}).Select("id").Where("note_id = ?", id)
		}

		if err := tx.Where("note_id = ?", id).
			Or("comment_id IN (?)", commentIDs()).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).
			Or("comment_id IN (?)", commentIDs()).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).
			Or("comment_id IN (?)", commentIDs()).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
