package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

// maxImportBatch caps the number of ISBNs accepted by one import request.
const maxImportBatch = 100

// TasksController handles background import and task status endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// ImportRequest is the body of POST /api/books/import.
type ImportRequest struct {
	ISBNs []string `json:"isbns"`
}

// ImportBooks handles POST /api/books/import
// Enqueues one lookup task per ISBN and returns the task ids in request order.
func (tc *TasksController) ImportBooks(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	isbns := make([]string, 0, len(req.ISBNs))
	for _, isbn := range req.ISBNs {
		if isbn = strings.TrimSpace(isbn); isbn != "" {
			isbns = append(isbns, isbn)
		}
	}
	if len(isbns) == 0 {
		respondBadRequest(c, "isbns can't be empty")
		return
	}
	if len(isbns) > maxImportBatch {
		respondBadRequest(c, "too many isbns in one request")
		return
	}

	ids, err := tc.queue.EnqueueImports(c.Request.Context(), isbns)
	if err != nil {
		respondInternalError(c, err, "enqueue imports")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_ids": ids,
		"message":  "tasks enqueued",
	})
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil && status != backlite.TaskStatusNotFound {
		respondInternalError(c, err, "task status")
		return
	}

	if status == backlite.TaskStatusNotFound {
		respondError(c, http.StatusNotFound, "Task Not Found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
