package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/talentlens/talentlens/internal/adapter/store"
)

// AnalysesHandler serves persisted contributor analyses.
type AnalysesHandler struct {
	store *store.PostgresStore
}

// NewAnalysesHandler creates a new analyses handler.
func NewAnalysesHandler(s *store.PostgresStore) *AnalysesHandler {
	return &AnalysesHandler{store: s}
}

// Register sets up analyses routes.
func (h *AnalysesHandler) Register(router fiber.Router) {
	analyses := router.Group("/analyses")
	analyses.Get("/", h.ListByLogin)
	analyses.Get("/:jobId", h.ListByJob)
}

// ListByLogin returns all persisted analyses for ?login=, newest first.
func (h *AnalysesHandler) ListByLogin(c fiber.Ctx) error {
	login := c.Query("login")
	if login == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "login query parameter required"})
	}

	results, err := h.store.ListAnalysesByLogin(c.Context(), login)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"results": results, "count": len(results)})
}

// ListByJob returns the analyses persisted for one job.
func (h *AnalysesHandler) ListByJob(c fiber.Ctx) error {
	results, err := h.store.ListAnalysesByJob(c.Context(), c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"results": results, "count": len(results)})
}
