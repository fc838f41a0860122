// Package export writes report tables as CSV, JSON, YAML or aligned text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"ledgerdesk/internal/amount"
	"ledgerdesk/internal/domain"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat accepts csv, json, yaml and yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json, yaml or text)", s)
}

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Records returns each row as a column -> value map.
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

type document struct {
	Title   string              `json:"title" yaml:"title"`
	Records []map[string]string `json:"records" yaml:"records"`
}

// Write encodes t to w.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Title: t.Title, Records: t.Records()})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Title: t.Title, Records: t.Records()}); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return enc.Close()
	case FormatText:
		return writeText(w, t)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// LedgersTable lists ledgers with their group and balances.
func LedgersTable(ledgers []domain.Ledger) Table {
	t := Table{
		Title:   "Ledgers",
		Columns: []string{"Name", "Group", "Opening", "Closing"},
	}
	for _, l := range ledgers {
		t.Rows = append(t.Rows, []string{l.Name, l.Group, amount.DrCr(l.OpeningBalance), amount.DrCr(l.Balance)})
	}
	return t
}

// TrialBalanceTable lists the trial balance with a totals row.
func TrialBalanceTable(tb domain.TrialBalance) Table {
	t := Table{
		Title:   "Trial Balance",
		Columns: []string{"Ledger", "Group", "Debit", "Credit"},
	}
	for _, r := range tb.Rows {
		t.Rows = append(t.Rows, []string{r.Ledger, r.Group, blankZero(r.Debit), blankZero(r.Credit)})
	}
	t.Rows = append(t.Rows, []string{"Total", "", amount.Plain(tb.TotalDebit), amount.Plain(tb.TotalCredit)})
	return t
}

// DayBookTable lists one page of vouchers.
func DayBookTable(vp domain.VoucherPage) Table {
	t := Table{
		Title:   fmt.Sprintf("Day Book (page %d of %d)", vp.Page, vp.Pages()),
		Columns: []string{"Date", "Number", "Type", "Particulars", "Amount", "Narration"},
	}
	for _, v := range vp.Items {
		t.Rows = append(t.Rows, []string{
			v.Date.Format("2006-01-02"), v.Number, string(v.Type),
			v.Particulars(), amount.Plain(v.Amount()), v.Narration,
		})
	}
	return t
}

// StatementTable lists a ledger statement.
func StatementTable(st domain.LedgerStatement) Table {
	t := Table{
		Title:   "Statement: " + st.Ledger.Name,
		Columns: []string{"Date", "Number", "Type", "Particulars", "Debit", "Credit", "Balance"},
	}
	for _, l := range st.Lines {
		t.Rows = append(t.Rows, []string{
			l.Date.Format("2006-01-02"), l.Number, string(l.Type), l.Particulars,
			blankZero(l.Debit), blankZero(l.Credit), amount.DrCr(l.Balance),
		})
	}
	return t
}

func blankZero(p domain.Paise) string {
	if p == 0 {
		return ""
	}
	return amount.Plain(p)
}

// writeText aligns the table in columns for reading in a pager.
func writeText(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Title); err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
