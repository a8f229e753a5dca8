package repository

import (
	"context"
	"errors"

	"notewall/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	Add(ctx context.Context, userID, noteID uint) error
	Remove(ctx context.Context, userID, noteID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, noteID uint) error {
	fav := models.Favorite{UserID: userID, NoteID: noteID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		// The composite primary key makes a second favorite a duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Note already favorited")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, noteID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", noteID)
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return favorites, nil
}
