package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/papilo-topato/AccountsManagerApplication/internal/api/testutils"
	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

func createTestProject(t *testing.T, testCtx *testutils.TestContext, name string) int64 {
	t.Helper()

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/projects",
		models.CreateProjectRequest{Name: name})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.ProjectResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Project.ID
}

func TestAddTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	projectID := createTestProject(t, testCtx, "Household")
	txnPath := fmt.Sprintf("/api/projects/%d/transactions", projectID)

	// Test case 1: Income with a fractional amount
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "income", Amount: "12.5", Title: "Salary", TimestampMs: 1000})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.TransactionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1250), created.Transaction.CreditMinor)
	assert.Equal(t, int64(0), created.Transaction.DebitMinor)

	// Test case 2: Expense with thousands separators
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "expense", Amount: "1,234.56", Title: "Rent", TimestampMs: 2000})
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(0), created.Transaction.CreditMinor)
	assert.Equal(t, int64(123456), created.Transaction.DebitMinor)

	// Test case 3: Unparseable amount blocks the save
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "income", Amount: "abc", Title: "Bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_AMOUNT", errResp.Code)

	// Test case 4: Zero amount is rejected
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "income", Amount: "0", Title: "Nothing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 5: Unknown kind fails request binding
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "transfer", Amount: "10", Title: "Nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 6: Unknown project
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/projects/99999/transactions",
		models.AddTransactionRequest{Kind: "income", Amount: "10", Title: "Orphan"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the two valid transactions were stored, newest first.
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, txnPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list models.TransactionListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Transactions, 2)
	assert.Equal(t, "Rent", list.Transactions[0].Title)
	assert.Equal(t, "Salary", list.Transactions[1].Title)
}

func TestListTransactionsUnknownProject(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/projects/7/transactions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	projectID := createTestProject(t, testCtx, "Trip")
	txnPath := fmt.Sprintf("/api/projects/%d/transactions", projectID)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "expense", Amount: "50", Title: "Fuel", TimestampMs: 1000})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.TransactionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Flip the entry from expense to income and change the amount.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut,
		fmt.Sprintf("/api/transactions/%d", created.Transaction.ID),
		models.UpdateTransactionRequest{Kind: "income", Amount: "75.25", Title: "Refund"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, txnPath, nil)
	var list models.TransactionListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Transactions, 1)
	assert.Equal(t, "Refund", list.Transactions[0].Title)
	assert.Equal(t, int64(7525), list.Transactions[0].CreditMinor)
	assert.Equal(t, int64(0), list.Transactions[0].DebitMinor)
	// Omitted timestamp keeps the original one.
	assert.Equal(t, int64(1000), list.Transactions[0].TimestampMs)

	// Updating an unknown transaction is reported, not silently applied.
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/transactions/99999",
		models.UpdateTransactionRequest{Kind: "income", Amount: "1", Title: "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTransaction(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	projectID := createTestProject(t, testCtx, "Groceries")
	txnPath := fmt.Sprintf("/api/projects/%d/transactions", projectID)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath,
		models.AddTransactionRequest{Kind: "expense", Amount: "20", Title: "Milk"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.TransactionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete,
		fmt.Sprintf("/api/transactions/%d", created.Transaction.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, txnPath, nil)
	var list models.TransactionListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Transactions, 0)

	// Deleting an absent id is a no-op success.
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, "/api/transactions/99999", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectBalances(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	emptyID := createTestProject(t, testCtx, "Empty")
	activeID := createTestProject(t, testCtx, "Active")

	txnPath := fmt.Sprintf("/api/projects/%d/transactions", activeID)
	for _, req := range []models.AddTransactionRequest{
		{Kind: "income", Amount: "5.00", Title: "Deposit", TimestampMs: 1},
		{Kind: "expense", Amount: "2.00", Title: "Fee", TimestampMs: 2},
	} {
		w := testutils.PerformRequest(testCtx.Router, http.MethodPost, txnPath, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/projects/balances", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ProjectBalancesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Balances, 2)

	byID := make(map[int64]models.ProjectBalance)
	for _, b := range resp.Balances {
		byID[b.ProjectID] = b
	}
	// A project with no transactions still appears, at zero.
	assert.Equal(t, int64(0), byID[emptyID].Balance)
	assert.Equal(t, int64(300), byID[activeID].Balance)
}
