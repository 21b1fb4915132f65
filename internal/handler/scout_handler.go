package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/talentlens/talentlens/internal/scout"
)

// ScoutHandler starts scouting jobs.
type ScoutHandler struct {
	runner *scout.Runner
}

// NewScoutHandler creates a new scout handler.
func NewScoutHandler(runner *scout.Runner) *ScoutHandler {
	return &ScoutHandler{runner: runner}
}

// Register sets up scout routes.
func (h *ScoutHandler) Register(router fiber.Router) {
	s := router.Group("/scout")
	s.Post("/repositories", h.StartRepositories)
	s.Post("/contributors", h.StartContributors)
}

// StartRepositories accepts repository URLs and returns 202 immediately;
// the pipeline runs in the background and is polled via /jobs/:id.
func (h *ScoutHandler) StartRepositories(c fiber.Ctx) error {
	var body struct {
		URLs []string `json:"urls"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.URLs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "urls must not be empty"})
	}

	jobID := h.runner.StartRepositories(body.URLs)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id":  jobID,
		"message": "analysis started",
	})
}

// StartContributors accepts contributor logins for profile-wide analysis
// and returns 202 immediately.
func (h *ScoutHandler) StartContributors(c fiber.Ctx) error {
	var body struct {
		Logins []string `json:"logins"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.Logins) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logins must not be empty"})
	}

	jobID := h.runner.StartContributors(body.Logins)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id":  jobID,
		"message": "analysis started",
	})
}
