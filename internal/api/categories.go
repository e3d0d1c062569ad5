package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CategoryListResponse{
		Status:     "success",
		Categories: categories,
	})
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	category, err := h.svc.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CategoryResponse{
		Status:   "success",
		Category: *category,
	})
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}
