package models

// Request models
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder *int   `json:"displayOrder"`
}

type ReorderProjectsRequest struct {
	Projects []ProjectOrder `json:"projects" binding:"required,dive"`
}

type ProjectOrder struct {
	ID           int64 `json:"id" binding:"required"`
	DisplayOrder int   `json:"displayOrder"`
}

// AddTransactionRequest carries a user-entered decimal amount string; it is
// parsed to minor units server-side and an unparseable amount rejects the
// request rather than being coerced to zero.
type AddTransactionRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=income expense"`
	Amount      string `json:"amount" binding:"required"`
	Title       string `json:"title" binding:"required"`
	TimestampMs int64  `json:"timestampMs"`
	CategoryID  *int64 `json:"categoryId"`
	Notes       string `json:"notes"`
}

type UpdateTransactionRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=income expense"`
	Amount      string `json:"amount" binding:"required"`
	Title       string `json:"title" binding:"required"`
	TimestampMs int64  `json:"timestampMs"`
	CategoryID  *int64 `json:"categoryId"`
	Notes       string `json:"notes"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// Response models
type ProjectResponse struct {
	Status  string  `json:"status"`
	Project Project `json:"project"`
}

type ProjectListResponse struct {
	Status   string    `json:"status"`
	Projects []Project `json:"projects"`
}

type ProjectBalancesResponse struct {
	Status   string           `json:"status"`
	Balances []ProjectBalance `json:"balances"`
}

type TransactionResponse struct {
	Status      string      `json:"status"`
	Transaction Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

type CategoryListResponse struct {
	Status     string     `json:"status"`
	Categories []Category `json:"categories"`
}

type CategoryResponse struct {
	Status   string   `json:"status"`
	Category Category `json:"category"`
}

type TrashListResponse struct {
	Status   string           `json:"status"`
	Projects []DeletedProject `json:"projects"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
