package server

import (
	"notewall/internal/models"
	"notewall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment on a note (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	// Verify note exists
	if _, err := s.noteRepo.GetByID(ctx, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	comment := &models.Comment{
		NoteID:  uint(noteID),
		UserID:  userID,
		Content: validation.SanitizeContent(req.Content),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return respondError(c, err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewCommentResponse(created))
}

// GetComments returns all comments for a note (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	if _, err := s.noteRepo.GetByID(ctx, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentRepo.ListByNote(ctx, uint(noteID))
	if err != nil {
		return respondError(c, err)
	}

	out := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, models.NewCommentResponse(&comments[i]))
	}
	return c.JSON(out)
}

// UpdateComment updates a comment (only owner)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	commentID, err := c.ParamsInt("id")
	if err != nil || commentID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.commentRepo.GetByID(ctx, uint(commentID))
	if err != nil {
		return respondError(c, err)
	}

	if comment.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own comments"))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	comment.Content = validation.SanitizeContent(req.Content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return respondError(c, err)
	}

	updated, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewCommentResponse(updated))
}

// DeleteComment deletes a comment (owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	commentID, err := c.ParamsInt("id")
	if err != nil || commentID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.commentRepo.GetByID(ctx, uint(commentID))
	if err != nil {
		return respondError(c, err)
	}

	if comment.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own comments"))
	}

	if err := s.commentRepo.Delete(ctx, uint(commentID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
