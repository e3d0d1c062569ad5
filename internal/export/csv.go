// Package export renders project transaction history as CSV, with a
// per-project running balance column.
package export

import (
	"sort"
	"strings"
	"time"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/money"
)

const (
	singleProjectHeader = "Date,Time,Title,Category,Credit,Debit,Running Balance"
	allProjectsHeader   = "Project Name,Date,Time,Title,Category,Credit,Debit,Running Balance"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SingleProjectCSV renders one project's transactions in timestamp order
// with a cumulative running balance. categoryNames maps category id to
// display name; transactions without a resolvable category get an empty
// Category field.
func SingleProjectCSV(transactions []models.Transaction, categoryNames map[int64]string) string {
	var sb strings.Builder
	sb.WriteString(singleProjectHeader)
	sb.WriteByte('\n')

	writeRows(&sb, "", transactions, categoryNames)
	return sb.String()
}

// AllProjectsCSV renders every project's transactions grouped by project in
// the given balance-row order, with the running balance reset to zero at the
// start of each project group.
func AllProjectsCSV(
	projects []models.ProjectBalance,
	transactionsByProject map[int64][]models.Transaction,
	categoryNames map[int64]string,
) string {
	var sb strings.Builder
	sb.WriteString(allProjectsHeader)
	sb.WriteByte('\n')

	for _, p := range projects {
		writeRows(&sb, p.Name, transactionsByProject[p.ProjectID], categoryNames)
	}
	return sb.String()
}

// writeRows appends one CSV line per transaction in timestamp ascending
// order. A non-empty projectName becomes the leading column.
func writeRows(sb *strings.Builder, projectName string, transactions []models.Transaction, categoryNames map[int64]string) {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	// Stable: equal timestamps keep their insertion order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampMs < sorted[j].TimestampMs
	})

	var running int64
	for _, t := range sorted {
		running += t.CreditMinor - t.DebitMinor

		ts := time.UnixMilli(t.TimestampMs)
		category := ""
		if t.CategoryID != nil {
			category = categoryNames[*t.CategoryID]
		}

		fields := []string{
			ts.Format(dateLayout),
			ts.Format(timeLayout),
			escape(t.Title),
			escape(category),
			money.FormatMinor(t.CreditMinor),
			money.FormatMinor(t.DebitMinor),
			money.FormatMinor(running),
		}
		if projectName != "" {
			fields = append([]string{escape(projectName)}, fields...)
		}

		sb.WriteString(strings.Join(fields, ","))
		sb.WriteByte('\n')
	}
}

// escape quotes a field if it contains a comma, quote, or newline, doubling
// any internal quotes.
func escape(value string) string {
	needsQuotes := strings.ContainsAny(value, ",\"\n")
	escaped := strings.ReplaceAll(value, `"`, `""`)
	if needsQuotes {
		return `"` + escaped + `"`
	}
	return escaped
}
