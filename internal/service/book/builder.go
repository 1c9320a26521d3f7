package book

import (
	"context"
	"strconv"

	"github.com/govalues/money"

	"github.com/nlazarte/libromayor/internal/errs"
	"github.com/nlazarte/libromayor/internal/ledger"
)

// build runs the validation chain and the posting expansion. Each check
// short-circuits; no state is touched before the whole chain passes.
//
// Overdraft and overpayment guards compute totals over the store as it
// stands, including, on an edit, the entry being replaced.
func (s *Service) build(ctx context.Context, in EntryInput) (ledger.Entry, error) {
	if !in.Direction.Valid() || !in.Category.Valid() {
		return ledger.Entry{}, errs.ErrInvalid
	}
	if in.AmountMinor <= 0 {
		return ledger.Entry{}, errs.ErrInvalidAmount
	}
	if in.AmountMinor > s.maxMinor {
		return ledger.Entry{}, errs.ErrAmountTooLarge
	}

	entries := s.store.All(ctx)
	if in.Direction == ledger.DirectionExpense {
		cash := ledger.Minor(ledger.TotalFor(s.currency, ledger.AccountCaja, entries))
		if in.AmountMinor > cash {
			return ledger.Entry{}, errs.ErrInsufficientCash
		}
		switch in.Category {
		case ledger.CategoryDebt:
			debt := ledger.Minor(ledger.TotalFor(s.currency, ledger.AccountDeudas, entries).Abs())
			if in.AmountMinor > debt {
				return ledger.Entry{}, errs.ErrDebtOverpaid
			}
		case ledger.CategoryLoan:
			loan := ledger.Minor(ledger.TotalFor(s.currency, ledger.AccountPrestamos, entries).Abs())
			if in.AmountMinor > loan {
				return ledger.Entry{}, errs.ErrLoanOverpaid
			}
		}
	}

	var loan *ledger.LoanDetails
	if in.Category == ledger.CategoryLoan && in.Direction == ledger.DirectionIncome {
		if in.Loan == nil {
			return ledger.Entry{}, errs.ErrLoanTerms
		}
		details, err := s.QuoteLoan(in.AmountMinor, in.Loan.TotalToPayMinor, in.Loan.Installments)
		if err != nil {
			return ledger.Entry{}, err
		}
		loan = &details
	}

	amount := ledger.FromMinor(s.currency, in.AmountMinor)
	return ledger.Entry{
		Description: in.Description,
		Amount:      amount,
		Direction:   in.Direction,
		Category:    in.Category,
		Loan:        loan,
		Postings:    s.expand(in.Direction, in.Category, amount, loan),
	}, nil
}

// expand produces the balanced posting set for a (category, direction) pair.
// The mapping is exhaustive over the closed enums; debt income deliberately
// posts a single credit with no cash debit, so taking on a debt raises the
// outstanding balance without touching cash.
func (s *Service) expand(dir ledger.Direction, cat ledger.Category, amount money.Amount, loan *ledger.LoanDetails) []ledger.Posting {
	zero := ledger.Zero(s.currency)
	debit := func(a ledger.Account, v money.Amount) ledger.Posting {
		return ledger.Posting{Account: a, Debit: v, Credit: zero}
	}
	credit := func(a ledger.Account, v money.Amount) ledger.Posting {
		return ledger.Posting{Account: a, Debit: zero, Credit: v}
	}

	switch cat {
	case ledger.CategoryNormal:
		if dir == ledger.DirectionIncome {
			return []ledger.Posting{debit(ledger.AccountCaja, amount), credit(ledger.AccountIngresos, amount)}
		}
		return []ledger.Posting{debit(ledger.AccountGastos, amount), credit(ledger.AccountCaja, amount)}
	case ledger.CategoryLoan:
		if dir == ledger.DirectionIncome {
			return []ledger.Posting{debit(ledger.AccountCaja, amount), credit(ledger.AccountPrestamos, loan.TotalToPay)}
		}
		return []ledger.Posting{debit(ledger.AccountPrestamos, amount), credit(ledger.AccountCaja, amount)}
	case ledger.CategoryDebt:
		if dir == ledger.DirectionIncome {
			return []ledger.Posting{credit(ledger.AccountDeudas, amount)}
		}
		return []ledger.Posting{debit(ledger.AccountDeudas, amount), credit(ledger.AccountCaja, amount)}
	}
	return nil
}

// interestPercent renders interest/principal*100 with two decimals, rounding
// half-up, e.g. 200.00 over 1000.00 -> "20.00".
func interestPercent(principalMinor, interestMinor int64) string {
	scaled := (interestMinor*10000 + principalMinor/2) / principalMinor
	return strconv.FormatInt(scaled/100, 10) + "." + pad2(scaled%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
