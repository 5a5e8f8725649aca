package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/services"
)

type RecommendHandler struct {
	recommender services.RecommenderService
}

func NewRecommendHandler(recommender services.RecommenderService) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// HandleRecommend handles POST /projects/:id/recommendations. The run is
// all-or-nothing: a malformed AI response fails the request and persists
// nothing.
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	var req models.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Requirements == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "requirements is required",
		})
	}

	view, err := h.recommender.Recommend(c.Context(), projectID, req.Requirements)
	if err != nil {
		if errors.Is(err, services.ErrEmptyShortlist) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "No shortlisted candidates to rank",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Recommendation run failed",
			"details": err.Error(),
		})
	}

	return c.JSON(view)
}

// HandleHistory handles GET /projects/:id/recommendations
func (h *RecommendHandler) HandleHistory(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	runs, err := h.recommender.History(c.Context(), projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load recommendation history",
		})
	}

	return c.JSON(fiber.Map{"recommendations": runs})
}
