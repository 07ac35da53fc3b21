package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/finnova/internal/export"
	"github.com/theirongolddev/finnova/internal/log"
	"github.com/theirongolddev/finnova/internal/model"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions or charts",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export transactions as CSV (Date,Category,Amount,Type)",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export transactions as a PDF report",
	Args:  cobra.NoArgs,
	RunE:  runExportPDF,
}

var exportChartCmd = &cobra.Command{
	Use:       "chart pie|bar",
	Short:     "Render a PNG chart: pie (spending by category) or bar (income vs expenses)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pie", "bar"},
	RunE:      runExportChart,
}

func init() {
	exportCSVCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default stdout)")
	addRangeFlags(exportCSVCmd)
	exportPDFCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output PDF file (required)")
	_ = exportPDFCmd.MarkFlagRequired("output")
	addRangeFlags(exportPDFCmd)
	exportChartCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output PNG file (required)")
	_ = exportChartCmd.MarkFlagRequired("output")

	exportCmd.AddCommand(exportCSVCmd, exportPDFCmd, exportChartCmd)
	rootCmd.AddCommand(exportCmd)
}

// createOutput opens path for writing, or returns w when path is empty.
func createOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func runExportCSV(cmd *cobra.Command, _ []string) error {
	return exportTransactions(cmd, "csv", export.WriteCSV)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	return exportTransactions(cmd, "pdf", export.WritePDF)
}

// exportTransactions writes the transactions in the --from/--to range,
// newest first, with write.
func exportTransactions(cmd *cobra.Command, format string, write func(io.Writer, []model.Transaction) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	txs, err := selectTransactions(s, cmd, 0)
	if err != nil {
		return err
	}

	w, closeFn, err := createOutput(flagOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := write(w, txs); err != nil {
		_ = closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}

	if flagOutput != "" {
		s.log.WithComponent(log.ComponentExport).
			With(log.FieldPath, flagOutput).
			Debug("exported transactions", "format", format, "rows", len(txs))
		fmt.Fprintf(cmd.ErrOrStderr(), "  Wrote %d transactions to %s\n", len(txs), flagOutput)
	}
	return nil
}

func runExportChart(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "pie" && kind != "bar" {
		return fmt.Errorf("unknown chart %q (want pie or bar)", kind)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	w, closeFn, err := createOutput(flagOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	switch kind {
	case "pie":
		b, berr := s.svc.Breakdown(ctx)
		if berr != nil {
			err = berr
			break
		}
		err = export.WriteBreakdownPie(w, b, s.cfg.Display.Currency)
	case "bar":
		t, terr := s.svc.Totals(ctx)
		if terr != nil {
			err = terr
			break
		}
		err = export.WriteTotalsBar(w, t, s.cfg.Display.Currency)
	}
	cerr := closeFn()

	if errors.Is(err, export.ErrNoData) {
		_ = os.Remove(flagOutput)
		return fmt.Errorf("nothing to chart: %w", err)
	}
	if err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}
	s.log.WithComponent(log.ComponentExport).
		With(log.FieldPath, flagOutput).
		Debug("rendered chart", "chart", kind)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Wrote %s chart to %s\n", kind, flagOutput)
	return nil
}
