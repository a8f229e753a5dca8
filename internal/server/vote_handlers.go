package server

import (
	"notewall/internal/models"
	"notewall/internal/observability"
	"notewall/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CastVote records or flips a vote on a note or comment (protected).
// Casting the same vote twice is rejected; casting the opposite vote
// updates the existing row in place.
func (s *Server) CastVote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		NoteID    *uint `json:"note_id"`
		CommentID *uint `json:"comment_id"`
		VoteType  int   `json:"vote_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	target, err := models.NewTarget(req.NoteID, req.CommentID)
	if err != nil {
		return respondError(c, err)
	}

	action, err := s.voteRepo.Cast(ctx, userID, target, req.VoteType)
	if err != nil {
		return respondError(c, err)
	}
	observability.VotesCast.WithLabelValues(string(action)).Inc()

	status := fiber.StatusCreated
	msg := "Vote recorded"
	if action == repository.VoteActionUpdated {
		status = fiber.StatusOK
		msg = "Vote updated"
	}
	return c.Status(status).JSON(fiber.Map{
		"msg":    msg,
		"action": string(action),
	})
}

// GetVoteCount returns the vote tally for a note or comment (public).
func (s *Server) GetVoteCount(c *fiber.Ctx) error {
	ctx := c.Context()

	target, err := targetFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	positive, negative, err := s.voteRepo.Count(ctx, target)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"positive_votes": positive,
		"negative_votes": negative,
		"total_votes":    positive - negative,
	})
}

// GetMyVote returns the caller's vote on a target, 0 when none exists.
func (s *Server) GetMyVote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	target, err := targetFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	voteType, err := s.voteRepo.UserVote(ctx, userID, target)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"vote_type": voteType})
}
