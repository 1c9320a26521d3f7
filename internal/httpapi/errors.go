package httpapi

import (
	"errors"
	"net/http"

	"github.com/nlazarte/libromayor/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// mapDomainError normalizes domain errors into an HTTP status and code.
// Validation failures are 422: the request was well-formed but the book
// refuses it.
func mapDomainError(err error) (status int, code string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "invalid_amount"
	case errors.Is(err, errs.ErrAmountTooLarge):
		return http.StatusUnprocessableEntity, "amount_too_large"
	case errors.Is(err, errs.ErrInsufficientCash):
		return http.StatusUnprocessableEntity, "insufficient_cash"
	case errors.Is(err, errs.ErrDebtOverpaid):
		return http.StatusUnprocessableEntity, "debt_overpaid"
	case errors.Is(err, errs.ErrLoanOverpaid):
		return http.StatusUnprocessableEntity, "loan_overpaid"
	case errors.Is(err, errs.ErrLoanTerms):
		return http.StatusUnprocessableEntity, "invalid_loan_terms"
	case errors.Is(err, errs.ErrNoMovements):
		return http.StatusNotFound, "no_movements"
	case errors.Is(err, errs.ErrInvalid):
		return http.StatusBadRequest, "invalid"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func domainError(w http.ResponseWriter, err error) (status int, code string) {
	status, code = mapDomainError(err)
	writeErr(w, status, err.Error(), code)
	return status, code
}
