package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/services"
)

type ShortlistHandler struct {
	shortlist services.ShortlistService
}

func NewShortlistHandler(shortlist services.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{shortlist: shortlist}
}

// HandleAdd handles POST /projects/:id/shortlist. Adding is all-or-nothing:
// a conflict rejects the whole request and reports the names already on the
// shortlist.
func (h *ShortlistHandler) HandleAdd(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	var req models.ShortlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.ResumeIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_ids is required",
		})
	}

	ids := make([]uuid.UUID, 0, len(req.ResumeIDs))
	for _, raw := range req.ResumeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume ID format: " + raw,
			})
		}
		ids = append(ids, id)
	}

	added, err := h.shortlist.Add(c.Context(), projectID, ids, req.Note)
	if err != nil {
		var conflict *services.ShortlistConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     "Some resumes are already shortlisted",
				"conflicts": conflict.Names,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add to shortlist",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"added": added})
}

// HandleRemove handles DELETE /shortlist/:id
func (h *ShortlistHandler) HandleRemove(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	if err := h.shortlist.Remove(c.Context(), resumeID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Removed from shortlist"})
}

// HandleUpdateNote handles PUT /shortlist/:id/note
func (h *ShortlistHandler) HandleUpdateNote(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	var req models.ShortlistNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.shortlist.UpdateNote(c.Context(), resumeID, req.Note); err != nil {
		if errors.Is(err, services.ErrNotShortlisted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Resume is not shortlisted",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Note updated"})
}

// HandleList handles GET /projects/:id/shortlist?sort=name|score|selected_at|note
func (h *ShortlistHandler) HandleList(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	var sortKey services.SortKey
	if raw := c.Query("sort"); raw != "" {
		key, ok := services.ParseSortKey(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid sort key: " + raw,
			})
		}
		sortKey = key
	}

	selected, err := h.shortlist.Selected(c.Context(), projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list shortlist",
		})
	}

	if sortKey != "" {
		services.SortResumes(selected, sortKey)
	}

	return c.JSON(fiber.Map{"shortlist": selected})
}
