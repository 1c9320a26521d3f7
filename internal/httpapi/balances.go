package httpapi

import (
	"net/http"

	"github.com/nlazarte/libromayor/internal/ledger"
)

func (s *Server) getBalances(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Balances(r.Context())
	cash := ledger.Minor(report.Cash)
	loans := ledger.Minor(report.LoanOutstanding)
	debts := ledger.Minor(report.DebtOutstanding)
	net := ledger.Minor(report.NetWorth)
	toJSON(w, http.StatusOK, balancesResponse{
		Currency:             report.Cash.Curr().Code(),
		CashMinor:            cash,
		Cash:                 ledger.MinorString(cash),
		LoanOutstandingMinor: loans,
		LoanOutstanding:      ledger.MinorString(loans),
		DebtOutstandingMinor: debts,
		DebtOutstanding:      ledger.MinorString(debts),
		NetWorthMinor:        net,
		NetWorth:             ledger.MinorString(net),
		CashPositive:         report.CashPositive,
	})
}
