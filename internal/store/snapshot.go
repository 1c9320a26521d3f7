package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nlazarte/libromayor/internal/ledger"
)

// The wire format persisted to the key-value backend. Amounts travel as
// minor units so the snapshot stays independent of the money library's
// own encoding.

type snapshotRecord struct {
	Revision string        `json:"revision"`
	SavedAt  time.Time     `json:"saved_at"`
	Entries  []entryRecord `json:"entries"`
}

type entryRecord struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	AmountMinor int64           `json:"amount_minor"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Loan        *loanRecord     `json:"loan,omitempty"`
	Postings    []postingRecord `json:"postings"`
}

type loanRecord struct {
	TotalToPayMinor int64  `json:"total_to_pay_minor"`
	InterestPercent string `json:"interest_percent"`
	Installments    int    `json:"installments"`
}

type postingRecord struct {
	Account     string `json:"account"`
	DebitMinor  int64  `json:"debit_minor"`
	CreditMinor int64  `json:"credit_minor"`
}

type snapshot struct {
	revision string
	entries  []ledger.Entry
}

func encodeSnapshot(entries []ledger.Entry) ([]byte, string, error) {
	rec := snapshotRecord{
		Revision: uuid.New().String(),
		SavedAt:  time.Now().UTC(),
		Entries:  make([]entryRecord, 0, len(entries)),
	}
	for _, e := range entries {
		er := entryRecord{
			ID:          e.ID,
			Date:        e.Date,
			Description: e.Description,
			AmountMinor: ledger.Minor(e.Amount),
			Direction:   string(e.Direction),
			Category:    string(e.Category),
			Postings:    make([]postingRecord, 0, len(e.Postings)),
		}
		if e.Loan != nil {
			er.Loan = &loanRecord{
				TotalToPayMinor: ledger.Minor(e.Loan.TotalToPay),
				InterestPercent: e.Loan.InterestPercent,
				Installments:    e.Loan.Installments,
			}
		}
		for _, p := range e.Postings {
			er.Postings = append(er.Postings, postingRecord{
				Account:     string(p.Account),
				DebitMinor:  ledger.Minor(p.Debit),
				CreditMinor: ledger.Minor(p.Credit),
			})
		}
		rec.Entries = append(rec.Entries, er)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, "", err
	}
	return raw, rec.Revision, nil
}

func decodeSnapshot(raw []byte, currency string) (snapshot, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return snapshot{}, err
	}
	entries := make([]ledger.Entry, 0, len(rec.Entries))
	for _, er := range rec.Entries {
		e := ledger.Entry{
			ID:          er.ID,
			Date:        er.Date,
			Description: er.Description,
			Amount:      ledger.FromMinor(currency, er.AmountMinor),
			Direction:   ledger.Direction(er.Direction),
			Category:    ledger.Category(er.Category),
			Postings:    make([]ledger.Posting, 0, len(er.Postings)),
		}
		if er.Loan != nil {
			e.Loan = &ledger.LoanDetails{
				TotalToPay:      ledger.FromMinor(currency, er.Loan.TotalToPayMinor),
				InterestPercent: er.Loan.InterestPercent,
				Installments:    er.Loan.Installments,
			}
		}
		for _, pr := range er.Postings {
			e.Postings = append(e.Postings, ledger.Posting{
				Account: ledger.Account(pr.Account),
				Debit:   ledger.FromMinor(currency, pr.DebitMinor),
				Credit:  ledger.FromMinor(currency, pr.CreditMinor),
			})
		}
		entries = append(entries, e)
	}
	return snapshot{revision: rec.Revision, entries: entries}, nil
}
