package ledger

import "github.com/govalues/money"

// Report is the derived balance summary: cash, outstanding loan and debt
// magnitudes, and net worth (cash minus both liabilities). It is recomputed
// in full from the entry collection on every change; nothing is cached.
type Report struct {
	Cash            money.Amount
	LoanOutstanding money.Amount
	DebtOutstanding money.Amount
	NetWorth        money.Amount
	// CashPositive is a display-only flag derived from the sign of Cash.
	CashPositive bool
}

// Summarize derives the balance report from the full entry collection.
func Summarize(currency string, entries []Entry) Report {
	cash := TotalFor(currency, AccountCaja, entries)
	loans := TotalFor(currency, AccountPrestamos, entries).Abs()
	debts := TotalFor(currency, AccountDeudas, entries).Abs()

	net := cash
	if v, err := net.Sub(loans); err == nil {
		net = v
	}
	if v, err := net.Sub(debts); err == nil {
		net = v
	}
	return Report{
		Cash:            cash,
		LoanOutstanding: loans,
		DebtOutstanding: debts,
		NetWorth:        net,
		CashPositive:    Minor(cash) >= 0,
	}
}
