// Package export writes transactions and reports to files: CSV rows, a PDF
// transaction report and PNG charts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/theirongolddev/finnova/internal/model"
)

// CSVHeader is the header row of a transaction export.
var CSVHeader = []string{"Date", "Category", "Amount", "Type"}

// WriteCSV writes txs as CSV with a header row.
func WriteCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date,
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Type,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
