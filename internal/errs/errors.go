package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrInvalidAmount rejects non-positive amounts.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrAmountTooLarge rejects amounts above the configured maximum.
	ErrAmountTooLarge = errors.New("amount_too_large")
	// ErrInsufficientCash rejects expenses exceeding the cash balance.
	ErrInsufficientCash = errors.New("insufficient_cash")
	// ErrDebtOverpaid rejects debt payments above the outstanding debt.
	ErrDebtOverpaid = errors.New("debt_overpaid")
	// ErrLoanOverpaid rejects loan payments above the outstanding loan.
	ErrLoanOverpaid = errors.New("loan_overpaid")
	// ErrLoanTerms rejects repayment totals not exceeding the principal or
	// non-positive installment counts.
	ErrLoanTerms = errors.New("invalid_loan_terms")
	// ErrNoMovements signals an empty period to export callers.
	ErrNoMovements = errors.New("no_movements")
	// ErrPersistence wraps key-value write failures. The in-memory ledger stays
	// authoritative; callers should warn that the change may not survive a restart.
	ErrPersistence = errors.New("persistence")
)
