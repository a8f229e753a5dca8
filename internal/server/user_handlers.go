package server

import (
	"notewall/internal/models"
	"notewall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's profile (protected)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetMyNotes lists the authenticated user's own notes, anonymous ones
// included (protected)
func (s *Server) GetMyNotes(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	notes, err := s.noteRepo.GetByUserID(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewNoteResponses(notes))
}

// ListUsers handles GET /api/users, admin only
func (s *Server) ListUsers(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := s.requireAdmin(c); err != nil {
		return respondError(c, err)
	}

	p := parsePagination(c, 50)
	users, err := s.userRepo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(users)
}

// UpdateMyProfile updates the authenticated user's profile fields (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Username        *string `json:"username"`
		FirstName       *string `json:"first_name"`
		LastName        *string `json:"last_name"`
		Bio             *string `json:"bio"`
		ProfileImageURL *string `json:"profile_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		existing, err := s.userRepo.GetByUsername(ctx, *req.Username)
		if err != nil {
			return respondError(c, err)
		}
		if existing != nil {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("Username already taken"))
		}
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = validation.SanitizeContent(*req.Bio)
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}
