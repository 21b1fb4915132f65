package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/scout"
)

// JobsHandler exposes job status polling, streaming and cancellation.
type JobsHandler struct {
	tracker *scout.Tracker
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(tracker *scout.Tracker) *JobsHandler {
	return &JobsHandler{tracker: tracker}
}

// Register sets up job routes.
func (h *JobsHandler) Register(router fiber.Router) {
	jobs := router.Group("/jobs")
	jobs.Get("/:id", h.GetStatus)
	jobs.Get("/:id/stream", h.StreamSSE)
	jobs.Delete("/:id", h.Cancel)
}

// GetStatus returns a snapshot of the job.
func (h *JobsHandler) GetStatus(c fiber.Ctx) error {
	job, ok := h.tracker.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

// Cancel aborts a running job. In-flight requests are abandoned and the
// job moves to failed with a cancellation reason.
func (h *JobsHandler) Cancel(c fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.tracker.Get(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	if !h.tracker.Cancel(id) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "job already finished"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// StreamSSE streams job updates via Server-Sent Events.
func (h *JobsHandler) StreamSSE(c fiber.Ctx) error {
	id := c.Params("id")

	job, ok := h.tracker.Get(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	// If already terminal, just return the final status
	if job.Terminal() {
		data, _ := json.Marshal(job)
		return c.SendString(fmt.Sprintf("event: %s\ndata: %s\n\n", job.Status, string(data)))
	}

	ch := h.tracker.Subscribe(id)

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer h.tracker.Unsubscribe(id, ch)

		writeEvent(w, job)

		timeout := time.After(10 * time.Minute)
		for {
			select {
			case update, ok := <-ch:
				if !ok {
					return
				}
				writeEvent(w, update)
				if update.Terminal() {
					return
				}
			case <-timeout:
				slog.Warn("SSE timeout", "job_id", id)
				return
			}
		}
	})
}

func writeEvent(w *bufio.Writer, job domain.Job) {
	event := "progress"
	if job.Terminal() {
		event = job.Status
	}
	data, _ := json.Marshal(job)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(data))
	w.Flush()
}
