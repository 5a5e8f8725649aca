package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
	"scoai/resume-screener/internal/services"
)

type AnalyzeHandler struct {
	projectRepo repositories.ProjectRepository
	resumeRepo  repositories.ResumeRepository
	runner      services.BatchRunner
}

func NewAnalyzeHandler(
	projectRepo repositories.ProjectRepository,
	resumeRepo repositories.ResumeRepository,
	runner services.BatchRunner,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		projectRepo: projectRepo,
		resumeRepo:  resumeRepo,
		runner:      runner,
	}
}

// HandleAnalyze handles POST /projects/:id/analyze. The batch runs off the
// request path; the response carries a job id for polling progress.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	if _, err := h.projectRepo.FindByID(projectID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var req models.AnalyzeRequest
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

	criteria := services.Criteria{
		Mandatory: req.Mandatory,
		Optional:  req.Optional,
		Excluded:  req.Excluded,
		Options: services.AnalysisOptions{
			Skills:     req.Options.Skills,
			Experience: req.Options.Experience,
			Education:  req.Options.Education,
			Projects:   req.Options.Projects,
		},
	}

	jobID, err := h.runner.Enqueue(projectID, ids, criteria)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Analysis runner is shutting down",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id": jobID.String(),
		"status": services.JobQueued,
	})
}

// HandleJobStatus handles GET /analyze/:jobID
func (h *AnalyzeHandler) HandleJobStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, ok := h.runner.Job(jobID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(job)
}

// HandleCancel handles DELETE /analyze/:jobID
func (h *AnalyzeHandler) HandleCancel(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if !h.runner.Cancel(jobID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Job not found or already finished",
		})
	}

	return c.JSON(fiber.Map{"message": "Cancellation requested"})
}

// HandleCandidates handles GET /projects/:id/candidates
func (h *AnalyzeHandler) HandleCandidates(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	candidates, err := h.resumeRepo.FindCandidates(projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	return c.JSON(fiber.Map{"candidates": candidates})
}
