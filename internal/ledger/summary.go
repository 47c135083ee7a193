package ledger

import "github.com/goldguard-app/backend/pkg/money"

// Summary holds the three running totals derived from a transaction history.
//
// Net follows the bankroll convention: a deposit is money handed to a betting
// house (a cost), a withdrawal is money recovered, so
// Net = TotalWithdrawals - TotalDeposits. A bettor who deposited more than
// they withdrew has a negative net.
type Summary struct {
	TotalDeposits    money.Amount
	TotalWithdrawals money.Amount
	Net              money.Amount
}

// Summarize computes the totals over a transaction history.
//
// The result depends only on the multiset of transactions, never on their
// order. Totals are recomputed in full on every refresh; nothing is stored.
func Summarize(txs []*Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Kind {
		case KindDeposit:
			s.TotalDeposits = s.TotalDeposits.Add(tx.Amount)
		case KindWithdrawal:
			s.TotalWithdrawals = s.TotalWithdrawals.Add(tx.Amount)
		}
	}
	s.Net = s.TotalWithdrawals.Sub(s.TotalDeposits)
	return s
}
