package ledger

import "github.com/govalues/money"

// TotalFor computes the signed balance of one account over every posting of
// every entry: sum(debit) - sum(credit). It is a pure function of the full
// entry collection and returns zero for an empty one.
func TotalFor(currency string, account Account, entries []Entry) money.Amount {
	total := Zero(currency)
	for _, e := range entries {
		for _, p := range e.Postings {
			if p.Account != account {
				continue
			}
			if v, err := total.Add(p.Debit); err == nil {
				total = v
			}
			if v, err := total.Sub(p.Credit); err == nil {
				total = v
			}
		}
	}
	return total
}
