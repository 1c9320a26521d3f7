package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/nlazarte/libromayor/internal/ledger"
)

// quoteLoan handles POST /v1/loans/quote: the first half of the two-phase
// loan income flow. It validates the repayment terms against the principal
// and returns the derived interest without touching the ledger.
func (s *Server) quoteLoan(w http.ResponseWriter, r *http.Request) {
	var req quoteLoanRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	details, err := s.svc.QuoteLoan(req.AmountMinor, req.TotalToPayMinor, req.Installments)
	if err != nil {
		domainError(w, err)
		return
	}
	toJSON(w, http.StatusOK, loanResponse{
		TotalToPayMinor: ledger.Minor(details.TotalToPay),
		TotalToPay:      ledger.MinorString(ledger.Minor(details.TotalToPay)),
		InterestPercent: details.InterestPercent,
		Installments:    details.Installments,
	})
}
