package httpapi

import (
	"time"

	"github.com/nlazarte/libromayor/internal/ledger"
	"github.com/nlazarte/libromayor/internal/service/book"
)

type postEntryRequest struct {
	Direction   ledger.Direction `json:"direction"`
	Category    ledger.Category  `json:"category"`
	AmountMinor int64            `json:"amount_minor"`
	Description string           `json:"description,omitempty"`
	// Loan carries confirmed terms from a prior POST /v1/loans/quote.
	Loan *loanTermsRequest `json:"loan,omitempty"`
}

type loanTermsRequest struct {
	TotalToPayMinor int64 `json:"total_to_pay_minor"`
	Installments    int   `json:"installments"`
}

func (r postEntryRequest) toInput() book.EntryInput {
	in := book.EntryInput{
		Direction:   r.Direction,
		Category:    r.Category,
		AmountMinor: r.AmountMinor,
		Description: r.Description,
	}
	if r.Loan != nil {
		in.Loan = &book.LoanTerms{TotalToPayMinor: r.Loan.TotalToPayMinor, Installments: r.Loan.Installments}
	}
	return in
}

type postingResponse struct {
	Account     ledger.Account `json:"account"`
	DebitMinor  int64          `json:"debit_minor"`
	Debit       string         `json:"debit"`
	CreditMinor int64          `json:"credit_minor"`
	Credit      string         `json:"credit"`
}

type loanResponse struct {
	TotalToPayMinor int64  `json:"total_to_pay_minor"`
	TotalToPay      string `json:"total_to_pay"`
	InterestPercent string `json:"interest_percent"`
	Installments    int    `json:"installments"`
}

type entryResponse struct {
	ID          int64             `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description,omitempty"`
	AmountMinor int64             `json:"amount_minor"`
	Amount      string            `json:"amount"`
	Direction   ledger.Direction  `json:"direction"`
	Category    ledger.Category   `json:"category"`
	Loan        *loanResponse     `json:"loan,omitempty"`
	Postings    []postingResponse `json:"postings"`
	// Warning is set when the change committed in memory but the snapshot
	// write failed; it may not survive a restart.
	Warning string `json:"warning,omitempty"`
}

func toEntryResponse(e ledger.Entry) entryResponse {
	resp := entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		AmountMinor: ledger.Minor(e.Amount),
		Amount:      ledger.MinorString(ledger.Minor(e.Amount)),
		Direction:   e.Direction,
		Category:    e.Category,
		Postings:    make([]postingResponse, 0, len(e.Postings)),
	}
	if e.Loan != nil {
		resp.Loan = &loanResponse{
			TotalToPayMinor: ledger.Minor(e.Loan.TotalToPay),
			TotalToPay:      ledger.MinorString(ledger.Minor(e.Loan.TotalToPay)),
			InterestPercent: e.Loan.InterestPercent,
			Installments:    e.Loan.Installments,
		}
	}
	for _, p := range e.Postings {
		resp.Postings = append(resp.Postings, postingResponse{
			Account:     p.Account,
			DebitMinor:  ledger.Minor(p.Debit),
			Debit:       ledger.MinorString(ledger.Minor(p.Debit)),
			CreditMinor: ledger.Minor(p.Credit),
			Credit:      ledger.MinorString(ledger.Minor(p.Credit)),
		})
	}
	return resp
}

// listEntriesResponse marks the empty month distinctly so clients can render
// the "no movements" state without inspecting Items.
type listEntriesResponse struct {
	Items []entryResponse `json:"items"`
	Count int             `json:"count"`
	Empty bool            `json:"empty"`
	Year  int             `json:"year,omitempty"`
	Month int             `json:"month,omitempty"`
}

type balancesResponse struct {
	Currency             string `json:"currency"`
	CashMinor            int64  `json:"cash_minor"`
	Cash                 string `json:"cash"`
	LoanOutstandingMinor int64  `json:"loan_outstanding_minor"`
	LoanOutstanding      string `json:"loan_outstanding"`
	DebtOutstandingMinor int64  `json:"debt_outstanding_minor"`
	DebtOutstanding      string `json:"debt_outstanding"`
	NetWorthMinor        int64  `json:"net_worth_minor"`
	NetWorth             string `json:"net_worth"`
	CashPositive         bool   `json:"cash_positive"`
}

type quoteLoanRequest struct {
	AmountMinor     int64 `json:"amount_minor"`
	TotalToPayMinor int64 `json:"total_to_pay_minor"`
	Installments    int   `json:"installments"`
}
