package repository

import (
	"context"
	"errors"

	"notewall/internal/models"
	"notewall/internal/observability"

	"gorm.io/gorm"
)

// VoteAction reports what Cast did with the vote.
type VoteAction string

const (
	VoteActionAdded   VoteAction = "added"
	VoteActionUpdated VoteAction = "updated"
)

// VoteRepository is the vote engine: it owns the one-active-vote-per
// (user, target) invariant.
type VoteRepository interface {
	// Cast records userID's vote on target. A first vote inserts a row
	// (VoteActionAdded); re-casting the opposite type flips the existing row
	// in place (VoteActionUpdated); re-casting the same type fails with
	// models.ErrDuplicateVote. It never produces two rows for one
	// (user, target) pair.
	Cast(ctx context.Context, userID uint, target models.Target, voteType int) (VoteAction, error)
	// Count tallies positive and negative votes for target.
	Count(ctx context.Context, target models.Target) (positive, negative int64, err error)
	// UserVote returns the vote type userID cast on target, or 0 when no
	// vote exists. Absence is a valid state, not an error.
	UserVote(ctx context.Context, userID uint, target models.Target) (int, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Cast(ctx context.Context, userID uint, target models.Target, voteType int) (VoteAction, error) {
	if !models.ValidVoteType(voteType) {
		return "", models.ErrInvalidVoteType
	}
	if err := targetExists(ctx, r.db, target); err != nil {
		return "", err
	}
	defer observability.TrackQuery("cast", "votes")()

	action := VoteActionAdded
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID()).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				UserID:    userID,
				NoteID:    target.NoteID(),
				CommentID: target.CommentID(),
				VoteType:  voteType,
			}
			if cerr := tx.Create(&vote).Error; cerr != nil {
				// A concurrent request won the read-then-write race; the
				// unique index turned the second insert into a duplicate.
				if errors.Is(cerr, gorm.ErrDuplicatedKey) {
					return models.ErrDuplicateVote
				}
				return cerr
			}
			return nil
		case err != nil:
			return err
		case existing.VoteType == voteType:
			return models.ErrDuplicateVote
		default:
			action = VoteActionUpdated
			return tx.Model(&existing).Update("vote_type", voteType).Error
		}
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", models.NewInternalError(err)
	}
	return action, nil
}

func (r *voteRepository) Count(ctx context.Context, target models.Target) (int64, int64, error) {
	defer observability.TrackQuery("count", "votes")()
	var positive, negative int64

	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where(target.Column()+" = ? AND vote_type = ?", target.ID(), models.VoteUp).
		Count(&positive).Error
	if err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).Model(&models.Vote{}).
		Where(target.Column()+" = ? AND vote_type = ?", target.ID(), models.VoteDown).
		Count(&negative).Error
	if err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	return positive, negative, nil
}

func (r *voteRepository) UserVote(ctx context.Context, userID uint, target models.Target) (int, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+target.Column()+" = ?", userID, target.ID()).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return vote.VoteType, nil
}

// targetExists verifies the target's note or comment is present. Both the
// vote and report repositories refuse to reference an absent entity.
func targetExists(ctx context.Context, db *gorm.DB, target models.Target) error {
	var count int64
	var err error
	switch target.Kind() {
	case models.TargetComment:
		err = db.WithContext(ctx).Model(&models.Comment{}).
			Where("id = ?", target.ID()).Count(&count).Error
		if err == nil && count == 0 {
			return models.NewNotFoundError("Comment", target.ID())
		}
	default:
		err = db.WithContext(ctx).Model(&models.Note{}).
			Where("id = ?", target.ID()).Count(&count).Error
		if err == nil && count == 0 {
			return models.NewNotFoundError("Note", target.ID())
		}
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
