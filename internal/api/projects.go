package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	project, err := h.svc.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ProjectResponse{
		Status:  "success",
		Project: *project,
	})
}

// ListProjects handles GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{
		Status:   "success",
		Projects: projects,
	})
}

// GetProject handles GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.svc.GetProject(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{
		Status:  "success",
		Project: *project,
	})
}

// UpdateProject handles PUT /api/projects/:id. The update is a full-row
// replace, so the existing row supplies the creation timestamp and, when
// omitted from the request, the display order.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	existing, err := h.svc.GetProject(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated := models.Project{
		ID:           id,
		Name:         req.Name,
		CreatedAtMs:  existing.CreatedAtMs,
		DisplayOrder: existing.DisplayOrder,
	}
	if req.Description != "" {
		updated.Description = &req.Description
	}
	if req.DisplayOrder != nil {
		updated.DisplayOrder = *req.DisplayOrder
	}

	if err := h.svc.UpdateProject(c.Request.Context(), updated); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// ReorderProjects handles PUT /api/projects/order
func (h *Handler) ReorderProjects(c *gin.Context) {
	var req models.ReorderProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	for _, p := range req.Projects {
		if err := h.svc.UpdateProjectOrder(c.Request.Context(), p.ID, p.DisplayOrder); err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// ListProjectBalances handles GET /api/projects/balances
func (h *Handler) ListProjectBalances(c *gin.Context) {
	balances, err := h.svc.ListProjectBalances(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectBalancesResponse{
		Status:   "success",
		Balances: balances,
	})
}

// StreamProjectBalances handles GET /api/projects/balances/stream: a
// server-sent-events subscription that pushes a fresh balance snapshot
// after every write to the projects or transactions tables, until the
// client disconnects.
func (h *Handler) StreamProjectBalances(c *gin.Context) {
	updates := h.svc.ObserveProjectBalances(c.Request.Context())

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		snapshot, open := <-updates
		if !open {
			return false
		}
		c.SSEvent("balances", snapshot)
		return true
	})
}

// MoveProjectToTrash handles DELETE /api/projects/:id: the user-facing
// delete always archives; there is no direct permanent delete of a live
// project.
func (h *Handler) MoveProjectToTrash(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.MoveToTrash(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: "Project moved to trash",
	})
}

// pathID parses an integer id path parameter, answering 400 itself when the
// value is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid id",
		})
		return 0, false
	}
	return id, true
}
