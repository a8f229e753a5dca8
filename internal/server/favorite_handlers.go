package server

import (
	"notewall/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FavoriteNote bookmarks a note for the caller (protected)
func (s *Server) FavoriteNote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	if _, err := s.noteRepo.GetByID(ctx, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	if err := s.favoriteRepo.Add(ctx, userID, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "Note favorited"})
}

// UnfavoriteNote removes a bookmark (protected)
func (s *Server) UnfavoriteNote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	if err := s.favoriteRepo.Remove(ctx, userID, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyFavorites lists the caller's bookmarked notes (protected)
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]models.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, models.NewFavoriteResponse(&favorites[i]))
	}
	return c.JSON(out)
}
