// Package export renders a month of ledger activity as the tabular CSV
// report the book has always produced: Fecha,Descripcion,Cuenta,Debe,Haber,
// one row per posting with the entry's date and description repeated.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/nlazarte/libromayor/internal/errs"
	"github.com/nlazarte/libromayor/internal/ledger"
)

var header = []string{"Fecha", "Descripcion", "Cuenta", "Debe", "Haber"}

// MonthCSV writes the report for the given entries. It refuses to produce a
// file for an empty period so callers can tell the user instead.
func MonthCSV(w io.Writer, entries []ledger.Entry) error {
	if len(entries) == 0 {
		return errs.ErrNoMovements
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		date := e.Date.UTC().Format(time.RFC3339)
		for _, p := range e.Postings {
			row := []string{
				date,
				e.Description,
				string(p.Account),
				ledger.MinorString(ledger.Minor(p.Debit)),
				ledger.MinorString(ledger.Minor(p.Credit)),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename returns the download name for a month's report, e.g.
// libro_3_2026.csv.
func Filename(year int, month time.Month) string {
	return fmt.Sprintf("libro_%d_%d.csv", int(month), year)
}
