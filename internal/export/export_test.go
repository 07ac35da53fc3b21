package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/theirongolddev/finnova/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const pngMagic = "\x89PNG\r\n\x1a\n"

func TestWriteCSV(t *testing.T) {
	txs := []model.Transaction{
		{Date: "2024-01-03", Category: "Food", Amount: 12.5, Type: model.TypeExpense},
		{Date: "2024-01-01", Category: model.NoCategory, Amount: 1000, Type: model.TypeIncome},
		{Date: "2024-01-02", Category: "Eating, out", Amount: 3, Type: model.TypeExpense},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if got := rows[0]; got[0] != "Date" || got[1] != "Category" || got[2] != "Amount" || got[3] != "Type" {
		t.Errorf("header = %v", got)
	}
	if got := rows[1]; got[2] != "12.50" || got[3] != "Expense" {
		t.Errorf("row 1 = %v", got)
	}
	if got := rows[3][1]; got != "Eating, out" {
		t.Errorf("quoted category = %q", got)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "Date,Category,Amount,Type\n" {
		t.Errorf("empty export = %q", got)
	}
}

func TestWriteBreakdownPie(t *testing.T) {
	var buf bytes.Buffer
	b := model.Breakdown{Categories: []string{"Food", "Transport"}, Amounts: []float64{15, 3}}
	if err := WriteBreakdownPie(&buf, b, "Rs"); err != nil {
		t.Fatalf("WriteBreakdownPie: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte(pngMagic)) {
		t.Error("output is not a PNG")
	}
}

func TestWriteBreakdownPieNoData(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBreakdownPie(&buf, model.Breakdown{}, "Rs")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written without data")
	}
}

func TestWriteTotalsBar(t *testing.T) {
	var buf bytes.Buffer
	totals := model.Totals{Income: 1000, Expenses: 400, Balance: 600}
	if err := WriteTotalsBar(&buf, totals, "Rs"); err != nil {
		t.Fatalf("WriteTotalsBar: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte(pngMagic)) {
		t.Error("output is not a PNG")
	}

	if err := WriteTotalsBar(&buf, model.Totals{}, "Rs"); !errors.Is(err, ErrNoData) {
		t.Errorf("empty totals err = %v, want ErrNoData", err)
	}
}

// countColors counts the pixels of each bar color in a rendered PNG.
func countColors(t *testing.T, data []byte, colors ...drawing.Color) []int {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	want := make([]color.RGBA, len(colors))
	for i, c := range colors {
		want[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}

	counts := make([]int, len(colors))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			for i, c := range want {
				if px == c {
					counts[i]++
				}
			}
		}
	}
	return counts
}

func TestWriteTotalsBarScalesFromZero(t *testing.T) {
	var buf bytes.Buffer
	totals := model.Totals{Income: 100, Expenses: 40, Balance: 60}
	if err := WriteTotalsBar(&buf, totals, "Rs"); err != nil {
		t.Fatalf("WriteTotalsBar: %v", err)
	}

	counts := countColors(t, buf.Bytes(), chart.ColorGreen, chart.ColorRed, chart.ColorBlue)
	income, expenses, balance := counts[0], counts[1], counts[2]
	for i, n := range counts {
		if n < 1000 {
			t.Fatalf("bar %d has %d filled pixels, want a filled bar", i, n)
		}
	}

	// Bars share a width, so area tracks height.
	if r := float64(balance) / float64(income); math.Abs(r-0.6) > 0.05 {
		t.Errorf("balance:income = %.2f, want about 0.60", r)
	}
	if r := float64(expenses) / float64(income); math.Abs(r-0.4) > 0.05 {
		t.Errorf("expenses:income = %.2f, want about 0.40", r)
	}
}

func TestWriteTotalsBarNegativeBalance(t *testing.T) {
	var buf bytes.Buffer
	totals := model.Totals{Income: 50, Expenses: 100, Balance: -50}
	if err := WriteTotalsBar(&buf, totals, "Rs"); err != nil {
		t.Fatalf("WriteTotalsBar: %v", err)
	}

	counts := countColors(t, buf.Bytes(), chart.ColorGreen, chart.ColorRed, chart.ColorBlue)
	if counts[0] == 0 || counts[1] == 0 || counts[2] == 0 {
		t.Errorf("filled pixels = %v, want every bar drawn", counts)
	}
}

func TestWritePDF(t *testing.T) {
	txs := make([]model.Transaction, 60)
	for i := range txs {
		txs[i] = model.Transaction{Date: "2024-01-02", Category: "Café", Amount: float64(i) + 0.5, Type: model.TypeExpense}
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, txs); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	if pages := bytes.Count(out, []byte("/Type /Page\n")); pages < 2 {
		t.Errorf("pages = %d, want the rows to flow onto a second page", pages)
	}
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if pages := bytes.Count(buf.Bytes(), []byte("/Type /Page\n")); pages != 1 {
		t.Errorf("pages = %d, want a single title page", pages)
	}
}
