package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/service"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
)

// Handler holds the API handlers' dependencies
type Handler struct {
	svc    service.Service
	logger *utils.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service, logger *utils.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/projects", h.CreateProject)
		api.GET("/projects", h.ListProjects)
		api.GET("/projects/balances", h.ListProjectBalances)
		api.GET("/projects/balances/stream", h.StreamProjectBalances)
		api.PUT("/projects/order", h.ReorderProjects)
		api.GET("/projects/:id", h.GetProject)
		api.PUT("/projects/:id", h.UpdateProject)
		api.DELETE("/projects/:id", h.MoveProjectToTrash)

		api.POST("/projects/:id/transactions", h.AddTransaction)
		api.GET("/projects/:id/transactions", h.ListTransactions)
		api.PUT("/transactions/:id", h.UpdateTransaction)
		api.DELETE("/transactions/:id", h.DeleteTransaction)

		api.GET("/categories", h.ListCategories)
		api.POST("/categories", h.CreateCategory)
		api.DELETE("/categories/:id", h.DeleteCategory)

		api.GET("/trash", h.ListTrash)
		api.POST("/trash/cleanup", h.CleanupTrash)
		api.POST("/trash/:originalId/restore", h.RestoreFromTrash)
		api.DELETE("/trash/:originalId", h.PermanentlyDelete)

		api.GET("/projects/:id/export", h.ExportProjectCSV)
		api.GET("/export", h.ExportAllProjectsCSV)
	}
}

// respondError maps domain errors to HTTP responses. The duplicate-name
// error is user-surfaceable and keeps its message; unanticipated storage
// faults are logged and collapse to a generic "operation failed".
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status:  "error",
			Code:    "DUPLICATE_NAME",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrAlreadyInTrash):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status:  "error",
			Code:    "ALREADY_IN_TRASH",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrBlankName), errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: err.Error(),
		})
	default:
		h.logger.Error("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL",
			Message: "Operation failed",
		})
	}
}
