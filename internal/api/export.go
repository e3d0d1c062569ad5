package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportProjectCSV handles GET /api/projects/:id/export, serving the
// project's transaction history as a CSV attachment.
func (h *Handler) ExportProjectCSV(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	filename, body, err := h.svc.ExportProjectCSV(c.Request.Context(), projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	serveCSV(c, filename, body)
}

// ExportAllProjectsCSV handles GET /api/export, serving every project's
// history grouped by project.
func (h *Handler) ExportAllProjectsCSV(c *gin.Context) {
	filename, body, err := h.svc.ExportAllProjectsCSV(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	serveCSV(c, filename, body)
}

func serveCSV(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
