package server

import (
	"notewall/internal/models"
	"notewall/internal/observability"
	"notewall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateNote handles POST /api/notes
func (s *Server) CreateNote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title" validate:"required,max=100"`
		Content     string   `json:"content" validate:"required"`
		IsAnonymous bool     `json:"is_anonymous"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.Struct(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	note := &models.Note{
		UserID:      userID,
		Title:       req.Title,
		Content:     validation.SanitizeContent(req.Content),
		IsAnonymous: req.IsAnonymous,
	}

	if err := s.noteRepo.Create(ctx, note, req.Tags); err != nil {
		return respondError(c, err)
	}
	observability.NotesCreated.Inc()

	created, err := s.noteRepo.GetByID(ctx, note.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewNoteResponse(created))
}

// GetNotes handles GET /api/notes
func (s *Server) GetNotes(c *fiber.Ctx) error {
	ctx := c.Context()
	p := parsePagination(c, 20)

	notes, err := s.noteRepo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewNoteResponses(notes))
}

// GetNote handles GET /api/notes/:id
func (s *Server) GetNote(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	note, err := s.noteRepo.GetByID(ctx, uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewNoteResponse(note))
}

// SearchNotes handles GET /api/notes/search?tag=...
// An empty query matches nothing: substring-of-everything is never what a
// caller wants, so it is rejected outright.
func (s *Server) SearchNotes(c *fiber.Ctx) error {
	ctx := c.Context()
	q := c.Query("tag")
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	notes, err := s.noteRepo.SearchByTag(ctx, q)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewNoteResponses(notes))
}

// UpdateNote handles PUT /api/notes/:id
func (s *Server) UpdateNote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	var req struct {
		Title       string   `json:"title"`
		Content     string   `json:"content"`
		IsAnonymous *bool    `json:"is_anonymous"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	note, err := s.noteRepo.GetByID(ctx, uint(noteID))
	if err != nil {
		return respondError(c, err)
	}

	if note.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own notes"))
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = validation.SanitizeContent(req.Content)
	}
	if req.IsAnonymous != nil {
		note.IsAnonymous = *req.IsAnonymous
	}

	if err := s.noteRepo.Update(ctx, note, req.Tags); err != nil {
		return respondError(c, err)
	}

	updated, err := s.noteRepo.GetByID(ctx, note.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewNoteResponse(updated))
}

// DeleteNote handles DELETE /api/notes/:id
func (s *Server) DeleteNote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	noteID, err := c.ParamsInt("id")
	if err != nil || noteID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid note ID"))
	}

	note, err := s.noteRepo.GetByID(ctx, uint(noteID))
	if err != nil {
		return respondError(c, err)
	}

	if note.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own notes"))
	}

	if err := s.noteRepo.Delete(ctx, uint(noteID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// CreateTag handles POST /api/tags, admin only. Regular users get tags
// implicitly through note creation; this endpoint exists to pre-seed curated
// tags with a display color.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := s.requireAdmin(c); err != nil {
		return respondError(c, err)
	}

	var req struct {
		Name     string `json:"name" validate:"required,max=50"`
		ColorHex string `json:"color_hex" validate:"omitempty,hexcolor"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.Struct(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.tagRepo.GetByName(ctx, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Tag name already exists"))
	}

	tag := &models.Tag{Name: req.Name, ColorHex: req.ColorHex}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}
