package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mercury-tools/mercury-export/internal/model"
)

// statusUnknown labels transactions the API returned without a status.
const statusUnknown = "unknown"

// Summary aggregates a fetched transaction set. Total is a plain decimal sum
// of the amount field with no currency normalization.
type Summary struct {
	Count    int
	Total    decimal.Decimal
	ByStatus map[string]int
}

// Summarize computes the console summary for a set of transactions.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{
		Count:    len(txns),
		Total:    decimal.Zero,
		ByStatus: make(map[string]int),
	}
	for _, txn := range txns {
		s.Total = s.Total.Add(txn.Amount)

		status := string(txn.Status)
		if status == "" {
			status = statusUnknown
		}
		s.ByStatus[status]++
	}
	return s
}

// Print writes the summary in the console format. An empty set prints
// "No transactions found." and nothing else, so the percentage math never
// divides by zero.
func (s Summary) Print(w io.Writer) {
	if s.Count == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return
	}

	fmt.Fprintf(w, "Found %d transactions\n", s.Count)
	fmt.Fprintf(w, "Total amount: $%s\n", s.Total.StringFixed(2))
	fmt.Fprintln(w, "Transaction statuses:")

	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		count := s.ByStatus[status]
		pct := float64(count) / float64(s.Count) * 100
		fmt.Fprintf(w, "  - %s: %d (%.1f%%)\n", status, count, pct)
	}
}
