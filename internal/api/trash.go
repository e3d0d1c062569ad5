package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// ListTrash handles GET /api/trash
func (h *Handler) ListTrash(c *gin.Context) {
	projects, err := h.svc.ListTrash(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TrashListResponse{
		Status:   "success",
		Projects: projects,
	})
}

// RestoreFromTrash handles POST /api/trash/:originalId/restore
func (h *Handler) RestoreFromTrash(c *gin.Context) {
	originalID, ok := pathID(c, "originalId")
	if !ok {
		return
	}

	project, err := h.svc.RestoreFromTrash(c.Request.Context(), originalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{
		Status:  "success",
		Project: *project,
	})
}

// PermanentlyDelete handles DELETE /api/trash/:originalId
func (h *Handler) PermanentlyDelete(c *gin.Context) {
	originalID, ok := pathID(c, "originalId")
	if !ok {
		return
	}

	if err := h.svc.PermanentlyDelete(c.Request.Context(), originalID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// CleanupTrash handles POST /api/trash/cleanup: purge trash records older
// than the retention period, evaluated now.
func (h *Handler) CleanupTrash(c *gin.Context) {
	removed, err := h.svc.CleanupOldDeletedProjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Removed %d expired record(s)", removed),
	})
}
