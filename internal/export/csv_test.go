package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

func id(n int64) *int64 { return &n }

func TestSingleProjectCSV(t *testing.T) {
	txns := []models.Transaction{
		// Deliberately out of order; rendering must sort by timestamp.
		{ID: 2, TimestampMs: 2, Title: "Fee", DebitMinor: 200},
		{ID: 1, TimestampMs: 1, Title: "Deposit", CreditMinor: 500, CategoryID: id(7)},
	}
	names := map[int64]string{7: "Salary"}

	got := SingleProjectCSV(txns, names)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "Date,Time,Title,Category,Credit,Debit,Running Balance", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "Deposit,Salary,5.00,0.00,5.00"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "Fee,,0.00,2.00,3.00"), lines[2])

	// Date and time columns come from the transaction timestamp.
	ts := time.UnixMilli(1)
	assert.True(t, strings.HasPrefix(lines[1], ts.Format("2006-01-02")+","+ts.Format("15:04")+","), lines[1])
}

func TestSingleProjectCSVEmpty(t *testing.T) {
	got := SingleProjectCSV(nil, nil)
	assert.Equal(t, "Date,Time,Title,Category,Credit,Debit,Running Balance\n", got)
}

func TestAllProjectsCSVRunningBalanceResets(t *testing.T) {
	projects := []models.ProjectBalance{
		{ProjectID: 1, Name: "First"},
		{ProjectID: 2, Name: "Second"},
	}
	byProject := map[int64][]models.Transaction{
		1: {{TimestampMs: 1, Title: "A", CreditMinor: 1000}},
		2: {{TimestampMs: 2, Title: "B", CreditMinor: 2000}},
	}

	got := AllProjectsCSV(projects, byProject, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "Project Name,Date,Time,Title,Category,Credit,Debit,Running Balance", lines[0])

	// Each group starts over from zero; the second project's balance does
	// not include the first project's credit.
	assert.True(t, strings.HasPrefix(lines[1], "First,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], ",10.00,0.00,10.00"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Second,"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], ",20.00,0.00,20.00"), lines[2])
}

func TestAllProjectsCSVFollowsProjectOrder(t *testing.T) {
	projects := []models.ProjectBalance{
		{ProjectID: 2, Name: "Second"},
		{ProjectID: 1, Name: "First"},
	}
	byProject := map[int64][]models.Transaction{
		1: {{TimestampMs: 1, Title: "A", CreditMinor: 100}},
		2: {{TimestampMs: 2, Title: "B", CreditMinor: 100}},
		3: {{TimestampMs: 3, Title: "Orphan", CreditMinor: 100}},
	}

	got := AllProjectsCSV(projects, byProject, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	// Groups follow the given project order, and transactions for projects
	// not in the list are skipped.
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Second,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "First,"), lines[2])
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has "quotes"`, `"has ""quotes"""`},
		{"has\nnewline", "\"has\nnewline\""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escape(tt.input))
	}
}

func TestCSVFieldQuoting(t *testing.T) {
	txns := []models.Transaction{
		{TimestampMs: 1, Title: `Dinner, "fancy"`, CreditMinor: 100},
	}

	got := SingleProjectCSV(txns, nil)
	assert.Contains(t, got, `"Dinner, ""fancy"""`)
}

func TestStableOrderForEqualTimestamps(t *testing.T) {
	txns := []models.Transaction{
		{ID: 1, TimestampMs: 5, Title: "One", CreditMinor: 100},
		{ID: 2, TimestampMs: 5, Title: "Two", CreditMinor: 100},
	}

	got := SingleProjectCSV(txns, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Contains(t, lines[1], "One")
	assert.Contains(t, lines[2], "Two")
}
