// Package book implements the accounting core: it validates user movements,
// expands them into balanced postings, and orchestrates the store, the
// balance report and the month view.
package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/nlazarte/libromayor/internal/errs"
	"github.com/nlazarte/libromayor/internal/ledger"
)

// Ledger defines the store operations needed by the service.
type Ledger interface {
	All(ctx context.Context) []ledger.Entry
	Find(ctx context.Context, id int64) (ledger.Entry, error)
	Insert(ctx context.Context, e ledger.Entry) (ledger.Entry, error)
	Upsert(ctx context.Context, id int64, e ledger.Entry) (ledger.Entry, error)
	Delete(ctx context.Context, id int64) error
	NewID() int64
}

// Publisher notifies external consumers of ledger mutations. Publishing is
// best-effort; failures are logged, never surfaced to the user action.
type Publisher interface {
	PublishEntryChange(ctx context.Context, action string, entryID int64) error
}

// EntryInput is a validated-later user request for a new or replacement entry.
type EntryInput struct {
	Direction   ledger.Direction
	Category    ledger.Category
	AmountMinor int64
	Description string
	// Loan carries the confirmed repayment terms for loan income. The caller
	// obtains them up front via QuoteLoan (quote, then confirm).
	Loan *LoanTerms
}

// LoanTerms is the caller-supplied half of a loan income request.
type LoanTerms struct {
	TotalToPayMinor int64
	Installments    int
}

// Service exposes the ledger operations behind the HTTP surface.
type Service struct {
	store    Ledger
	pub      Publisher
	log      *slog.Logger
	currency string
	maxMinor int64
}

// New constructs the service. pub may be nil when event publishing is off.
func New(store Ledger, currency string, maxAmountMinor int64, pub Publisher, log *slog.Logger) *Service {
	return &Service{store: store, pub: pub, log: log, currency: currency, maxMinor: maxAmountMinor}
}

// QuoteLoan validates repayment terms against the principal and computes the
// derived interest. It mutates nothing: the caller confirms by passing the
// terms back in the create request.
func (s *Service) QuoteLoan(principalMinor, totalToPayMinor int64, installments int) (ledger.LoanDetails, error) {
	if principalMinor <= 0 {
		return ledger.LoanDetails{}, errs.ErrInvalidAmount
	}
	if principalMinor > s.maxMinor || totalToPayMinor > s.maxMinor {
		return ledger.LoanDetails{}, errs.ErrAmountTooLarge
	}
	if totalToPayMinor <= principalMinor {
		return ledger.LoanDetails{}, errs.ErrLoanTerms
	}
	if installments <= 0 {
		return ledger.LoanDetails{}, errs.ErrLoanTerms
	}
	return ledger.LoanDetails{
		TotalToPay:      ledger.FromMinor(s.currency, totalToPayMinor),
		InterestPercent: interestPercent(principalMinor, totalToPayMinor-principalMinor),
		Installments:    installments,
	}, nil
}

// Record validates and expands a new movement, assigns a fresh id and the
// creation timestamp, and inserts it. On a persistence failure the returned
// entry is still committed in memory alongside the wrapped error.
func (s *Service) Record(ctx context.Context, in EntryInput) (ledger.Entry, error) {
	e, err := s.build(ctx, in)
	if err != nil {
		return ledger.Entry{}, err
	}
	e.ID = s.store.NewID()
	e.Date = time.Now().UTC()
	stored, err := s.store.Insert(ctx, e)
	if err != nil {
		return stored, err
	}
	s.publish(ctx, "created", stored.ID)
	return stored, nil
}

// Replace rebuilds the entry with the given id from the input, keeping the
// id and the original creation date.
func (s *Service) Replace(ctx context.Context, id int64, in EntryInput) (ledger.Entry, error) {
	orig, err := s.store.Find(ctx, id)
	if err != nil {
		return ledger.Entry{}, err
	}
	e, err := s.build(ctx, in)
	if err != nil {
		return ledger.Entry{}, err
	}
	e.Date = orig.Date
	stored, err := s.store.Upsert(ctx, id, e)
	if err != nil {
		return stored, err
	}
	s.publish(ctx, "updated", id)
	return stored, nil
}

// Delete removes the entry with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "deleted", id)
	return nil
}

// Find returns the entry with the given id, for edit pre-fill.
func (s *Service) Find(ctx context.Context, id int64) (ledger.Entry, error) {
	return s.store.Find(ctx, id)
}

// Entries returns all entries, newest first.
func (s *Service) Entries(ctx context.Context) []ledger.Entry {
	return s.store.All(ctx)
}

// Month returns the entries of one calendar month, preserving store order.
func (s *Service) Month(ctx context.Context, year int, month time.Month) []ledger.Entry {
	return ledger.FilterMonth(s.store.All(ctx), year, month)
}

// Balances recomputes the full balance report from scratch.
func (s *Service) Balances(ctx context.Context) ledger.Report {
	return ledger.Summarize(s.currency, s.store.All(ctx))
}

func (s *Service) publish(ctx context.Context, action string, entryID int64) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishEntryChange(ctx, action, entryID); err != nil {
		s.log.Warn("publish entry change failed", "action", action, "entry_id", entryID, "err", err)
	}
}
