package ledger

import (
	"time"

	"github.com/govalues/money"
)

// Account enumerates the fixed set of accounts postings aggregate over.
// The set is closed; there is no user-defined chart of accounts.
type Account string

const (
	// AccountCaja is cash on hand.
	AccountCaja Account = "Caja"
	// AccountIngresos accumulates income credits.
	AccountIngresos Account = "Ingresos"
	// AccountGastos accumulates expense debits.
	AccountGastos Account = "Gastos"
	// AccountPrestamos tracks outstanding loan repayment obligations.
	AccountPrestamos Account = "Prestamos"
	// AccountDeudas tracks debts owed, distinct from loans.
	AccountDeudas Account = "Deudas"
)

// Accounts returns the closed account set in display order.
func Accounts() []Account {
	return []Account{AccountCaja, AccountIngresos, AccountGastos, AccountPrestamos, AccountDeudas}
}

// Valid reports whether a is one of the five known accounts.
func (a Account) Valid() bool {
	switch a {
	case AccountCaja, AccountIngresos, AccountGastos, AccountPrestamos, AccountDeudas:
		return true
	}
	return false
}

// Direction is the user-facing side of a movement.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Category identifies the posting logic applied to a movement.
type Category string

const (
	CategoryNormal Category = "normal"
	CategoryLoan   Category = "loan"
	CategoryDebt   Category = "debt"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryNormal || c == CategoryLoan || c == CategoryDebt
}

// Posting is one debit-or-credit line against a single account. In this
// domain exactly one of Debit/Credit carries the value; the other is zero.
type Posting struct {
	Account Account
	Debit   money.Amount
	Credit  money.Amount
}

// LoanDetails carries the repayment terms attached to a loan income entry.
type LoanDetails struct {
	// TotalToPay is the full repayment amount, principal plus interest.
	TotalToPay money.Amount
	// InterestPercent is the display form with two decimals, e.g. "20.00".
	InterestPercent string
	Installments    int
}

// Entry is the unit of user action and storage: a movement expanded into its
// balanced postings. ID is assigned once at creation and survives edits;
// Date is the creation timestamp, also preserved across edits.
type Entry struct {
	ID          int64
	Date        time.Time
	Description string
	Amount      money.Amount
	Direction   Direction
	Category    Category
	Loan        *LoanDetails
	Postings    []Posting
}
