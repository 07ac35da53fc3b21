package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/finnova/internal/model"

	"github.com/go-pdf/fpdf"
)

// PDFTitle heads a transaction report.
const PDFTitle = "Transaction Report"

// WritePDF writes txs as an A4 report: a centered title, then one
// "Date | Category | Amount | Type" line per transaction.
func WritePDF(w io.Writer, txs []model.Transaction) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(PDFTitle, true)
	pdf.SetCreator("finnova", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, PDFTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	for _, tx := range txs {
		line := strings.Join([]string{
			tx.Date,
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Type,
		}, " | ")
		pdf.CellFormat(0, 10, tr(line), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
