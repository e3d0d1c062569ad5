package models

// Project represents a tracked budget, trip, or shared-expense ledger.
// Timestamps are stored as milliseconds since the Unix epoch. DisplayOrder
// controls list position independently of creation time; lower values are
// shown first.
type Project struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Description  *string `db:"description" json:"description,omitempty"`
	CreatedAtMs  int64   `db:"created_at_ms" json:"createdAtMs"`
	DisplayOrder int     `db:"display_order" json:"displayOrder"`
}

// Transaction represents a single income or expense entry against a project.
// Amounts are stored in minor currency units as unsigned magnitudes; exactly
// one of CreditMinor/DebitMinor is expected to be non-zero, the sign is
// implicit in which field is populated.
type Transaction struct {
	ID          int64   `db:"id" json:"id"`
	ProjectID   int64   `db:"project_id" json:"projectId"`
	TimestampMs int64   `db:"timestamp_ms" json:"timestampMs"`
	Title       string  `db:"title" json:"title"`
	Notes       *string `db:"notes" json:"notes,omitempty"`
	CategoryID  *int64  `db:"category_id" json:"categoryId,omitempty"`
	CreditMinor int64   `db:"credit_minor" json:"creditMinor"`
	DebitMinor  int64   `db:"debit_minor" json:"debitMinor"`
}

// Category labels transactions. Deleting a category nulls out CategoryID on
// referencing transactions rather than cascading.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// DeletedProject is a trash record: a snapshot of a project that was moved
// to the trash. It carries no live reference back to the projects table;
// OriginalID is unique so a project can only be in the trash once at a time.
type DeletedProject struct {
	ID          int64   `db:"id" json:"id"`
	OriginalID  int64   `db:"original_id" json:"originalId"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	CreatedAtMs int64   `db:"created_at_ms" json:"createdAtMs"`
	DeletedAtMs int64   `db:"deleted_at_ms" json:"deletedAtMs"`
}

// ProjectBalance is a derived row, never persisted: per-project balance
// computed as sum(credit) - sum(debit) over that project's transactions.
type ProjectBalance struct {
	ProjectID   int64   `db:"project_id" json:"projectId"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Balance     int64   `db:"balance" json:"balance"`
}
