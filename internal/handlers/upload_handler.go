package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
	"scoai/resume-screener/internal/services"
)

type UploadHandler struct {
	projectRepo repositories.ProjectRepository
	resumeRepo  repositories.ResumeRepository
	storage     services.StorageService
	pdfParser   services.PDFParserService
	search      services.SearchService
	maxFileSize int64
}

func NewUploadHandler(
	projectRepo repositories.ProjectRepository,
	resumeRepo repositories.ResumeRepository,
	storage services.StorageService,
	pdfParser services.PDFParserService,
	search services.SearchService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		projectRepo: projectRepo,
		resumeRepo:  resumeRepo,
		storage:     storage,
		pdfParser:   pdfParser,
		search:      search,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /projects/:id/resumes. Accepts multiple PDF
// files under the "resumes" field; each file is ingested independently and
// per-file failures are reported alongside successes.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
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

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please upload 'resumes' as PDF files.",
		})
	}

	var uploaded []models.UploadResponse
	var failed []fiber.Map

	for _, file := range files {
		if file.Size > h.maxFileSize {
			failed = append(failed, fiber.Map{
				"name":  file.Filename,
				"error": fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize),
			})
			continue
		}

		storedName, filePath, err := h.storage.SaveFile(file)
		if err != nil {
			failed = append(failed, fiber.Map{
				"name":  file.Filename,
				"error": err.Error(),
			})
			continue
		}

		// No usable text means no record: the file is removed again
		text, err := h.pdfParser.ExtractText(filePath)
		if err != nil {
			h.storage.DeleteFile(storedName)
			failed = append(failed, fiber.Map{
				"name":  file.Filename,
				"error": fmt.Sprintf("text extraction failed: %v", err),
			})
			continue
		}

		resume := models.Resume{
			ID:          uuid.New(),
			ProjectID:   projectID,
			ResumeName:  file.Filename,
			DisplayName: strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)),
			FilePath:    filePath,
			FileSize:    file.Size,
			ResumeText:  text,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := h.resumeRepo.Create(&resume); err != nil {
			h.storage.DeleteFile(storedName)
			failed = append(failed, fiber.Map{
				"name":  file.Filename,
				"error": "failed to save resume record",
			})
			continue
		}

		// Best effort: a missing index entry only degrades semantic search
		if err := h.search.IndexResume(c.Context(), &resume); err != nil {
			log.Printf("⚠️ Failed to index resume %s: %v\n", resume.ResumeName, err)
		}

		uploaded = append(uploaded, models.UploadResponse{
			ID:           resume.ID.String(),
			ResumeName:   resume.ResumeName,
			OriginalName: file.Filename,
			FileSize:     file.Size,
		})
	}

	status := fiber.StatusCreated
	if len(uploaded) == 0 {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// HandleList handles GET /projects/:id/resumes
func (h *UploadHandler) HandleList(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	resumes, err := h.resumeRepo.FindByProject(projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	return c.JSON(fiber.Map{"resumes": resumes})
}

// HandleDelete handles DELETE /resumes/:id
func (h *UploadHandler) HandleDelete(c *fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	if resume.FilePath != "" {
		if err := h.storage.DeleteFile(filepath.Base(resume.FilePath)); err != nil {
			log.Printf("⚠️ Failed to delete stored file for %s: %v\n", resume.ResumeName, err)
		}
	}

	if err := h.search.RemoveResume(c.Context(), resumeID); err != nil {
		log.Printf("⚠️ Failed to remove resume %s from index: %v\n", resumeID, err)
	}

	if err := h.resumeRepo.Delete(resumeID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete resume",
		})
	}

	return c.JSON(fiber.Map{"message": "Resume deleted"})
}
