package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ledgerdesk/internal/api"
	"ledgerdesk/internal/domain"
	"ledgerdesk/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportPage   int
	exportSize   int
)

// exportReports lists the reports export understands.
var exportReports = []string{"ledgers", "trial-balance", "daybook"}

var exportCmd = &cobra.Command{
	Use:   "export <ledgers|trial-balance|daybook>",
	Short: "Write a report as CSV, JSON, YAML or text",
	Long: `Fetch a report from the backend and write it to stdout or a file.

Examples:
  ledgerdesk export ledgers
  ledgerdesk export trial-balance --format json --out tb.json
  ledgerdesk export daybook --page 2 --size 50 --format yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: exportReports,
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv, json, yaml or text")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&exportPage, "page", 1, "day book page")
	exportCmd.Flags().IntVar(&exportSize, "size", 0, "day book page size (default ui.page_size)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := loggedInClient(cfg)
	if err != nil {
		return err
	}

	size := exportSize
	if size <= 0 {
		size = cfg.UI.PageSize
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()
	table, err := fetchTable(ctx, client, args[0], exportPage, size)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, format, table); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(table.Rows), exportOut)
	}
	return nil
}

// reportSource is the part of the API client export reads from.
type reportSource interface {
	Ledgers(ctx context.Context) ([]domain.Ledger, error)
	TrialBalance(ctx context.Context) (domain.TrialBalance, error)
	Vouchers(ctx context.Context, page, size int) (domain.VoucherPage, error)
}

var _ reportSource = (*api.Client)(nil)

func fetchTable(ctx context.Context, client reportSource, report string, page, size int) (export.Table, error) {
	switch report {
	case "ledgers":
		ledgers, err := client.Ledgers(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.LedgersTable(ledgers), nil
	case "trial-balance":
		tb, err := client.TrialBalance(ctx)
		if err != nil {
			return export.Table{}, err
		}
		return export.TrialBalanceTable(tb), nil
	case "daybook":
		vp, err := client.Vouchers(ctx, page, size)
		if err != nil {
			return export.Table{}, err
		}
		return export.DayBookTable(vp), nil
	}
	return export.Table{}, fmt.Errorf("unknown report %q (want one of %v)", report, exportReports)
}
