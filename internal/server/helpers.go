package server

import (
	"errors"

	"notewall/internal/models"
	"notewall/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// respondError maps an AppError to its HTTP status. Duplicate votes answer
// 400 rather than 409: re-submitting an unchanged vote is treated as a bad
// request by the product, matching the documented endpoint contract.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeForbidden:
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		case models.CodeConflict:
			if errors.Is(appErr, models.ErrDuplicateVote) {
				return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
			}
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		}
	}
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// requireAdmin loads the caller and verifies the admin role.
func (s *Server) requireAdmin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}

// targetFromQuery builds a vote/report target from note_id / comment_id
// query parameters.
func targetFromQuery(c *fiber.Ctx) (models.Target, error) {
	var noteID, commentID *uint
	if v := c.QueryInt("note_id", 0); v > 0 {
		id := uint(v)
		noteID = &id
	}
	if v := c.QueryInt("comment_id", 0); v > 0 {
		id := uint(v)
		commentID = &id
	}
	return models.NewTarget(noteID, commentID)
}
