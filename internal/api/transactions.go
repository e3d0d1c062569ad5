package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/money"
)

// AddTransaction handles POST /api/projects/:id/transactions. The amount
// arrives as the user typed it; an unparseable or blank amount blocks the
// save instead of being coerced to zero.
func (h *Handler) AddTransaction(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	amountMinor, ok := money.ParseAmountMinor(req.Amount)
	if !ok || amountMinor <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_AMOUNT",
			Message: "Please enter a valid amount",
		})
		return
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	var (
		txn *models.Transaction
		err error
	)
	if req.Kind == "income" {
		txn, err = h.svc.AddIncome(c.Request.Context(), projectID, amountMinor, req.Title, req.TimestampMs, req.CategoryID, notes)
	} else {
		txn, err = h.svc.AddExpense(c.Request.Context(), projectID, amountMinor, req.Title, req.TimestampMs, req.CategoryID, notes)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TransactionResponse{
		Status:      "success",
		Transaction: *txn,
	})
}

// ListTransactions handles GET /api/projects/:id/transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	// 404 for an unknown project rather than an empty list.
	if _, err := h.svc.GetProject(c.Request.Context(), projectID); err != nil {
		h.respondError(c, err)
		return
	}

	txns, err := h.svc.ListTransactionsForProject(c.Request.Context(), projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionListResponse{
		Status:       "success",
		Transactions: txns,
	})
}

// UpdateTransaction handles PUT /api/transactions/:id
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_PARAM",
			Message: "Invalid request body",
		})
		return
	}

	amountMinor, ok := money.ParseAmountMinor(req.Amount)
	if !ok || amountMinor <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_AMOUNT",
			Message: "Please enter a valid amount",
		})
		return
	}

	existing, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated := models.Transaction{
		ID:          id,
		ProjectID:   existing.ProjectID,
		TimestampMs: existing.TimestampMs,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
	}
	if req.TimestampMs != 0 {
		updated.TimestampMs = req.TimestampMs
	}
	if req.Notes != "" {
		updated.Notes = &req.Notes
	}
	if req.Kind == "income" {
		updated.CreditMinor = amountMinor
	} else {
		updated.DebitMinor = amountMinor
	}

	if err := h.svc.UpdateTransaction(c.Request.Context(), updated); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}
