package server

import (
	"notewall/internal/models"
	"notewall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateReport flags a note or comment for moderation (protected)
func (s *Server) CreateReport(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		NoteID    *uint  `json:"note_id"`
		CommentID *uint  `json:"comment_id"`
		Reason    string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Reason == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Reason is required"))
	}

	target, err := models.NewTarget(req.NoteID, req.CommentID)
	if err != nil {
		return respondError(c, err)
	}

	report, err := s.reportRepo.Create(ctx, userID, target, validation.SanitizeContent(req.Reason))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     report.ID,
		"status": report.Status,
	})
}

// GetReports lists reports by status, admin only
func (s *Server) GetReports(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := s.requireAdmin(c); err != nil {
		return respondError(c, err)
	}

	status := c.Query("status", models.ReportStatusPending)
	p := parsePagination(c, 50)

	reports, err := s.reportRepo.ListByStatus(ctx, status, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reports)
}
