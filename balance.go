package hisaab

import "sort"

// Read-side balance math. These functions are pure and total: they never
// touch the store, never error, and an empty transaction set yields zero.
// Cancelled and soft-deleted transactions contribute nothing; settled
// transactions contribute zero (an overpaid remaining is a surplus, never
// negative debt).

// CounterpartyBalance pairs a counterparty with a derived balance.
type CounterpartyBalance struct {
	CounterpartyID string
	Balance        Money
}

// contribution is the amount a transaction adds to balance sums.
func contribution(t Transaction) Money {
	if !t.Active() || t.Status == Settled {
		return Money{}
	}
	return t.RemainingDue
}

// NetBalance derives the net balance of one counterparty from the
// transaction set: sum of what they still owe the user (gave) minus what
// the user still owes them (received). Positive means the counterparty owes
// the user.
func NetBalance(counterpartyID string, txs []Transaction) Money {
	var balance Money
	for _, t := range txs {
		if t.CounterpartyID != counterpartyID {
			continue
		}
		c := contribution(t)
		if c.IsZero() {
			continue
		}
		switch t.Direction {
		case Gave:
			balance = balance.Add(c)
		case Received:
			balance = balance.Sub(c)
		}
	}
	return balance
}

// PortfolioTotals derives the direction-partitioned totals across all
// counterparties. Each total is non-negative by construction: gave
// transactions feed only owedToUser, received ones only userOwes, so the
// two sides never cancel each other out.
func PortfolioTotals(txs []Transaction) (owedToUser, userOwes Money) {
	for _, t := range txs {
		c := contribution(t)
		if c.IsZero() {
			continue
		}
		switch t.Direction {
		case Gave:
			owedToUser = owedToUser.Add(c)
		case Received:
			userOwes = userOwes.Add(c)
		}
	}
	return owedToUser, userOwes
}

// balancesInOrder accumulates per-counterparty net balances, preserving the
// order in which counterparties first appear in the transaction set so that
// rankings are deterministic on ties.
func balancesInOrder(txs []Transaction) []CounterpartyBalance {
	index := make(map[string]int)
	var order []string
	for _, t := range txs {
		if t.CounterpartyID == "" || !t.Active() {
			continue
		}
		if _, seen := index[t.CounterpartyID]; !seen {
			index[t.CounterpartyID] = len(order)
			order = append(order, t.CounterpartyID)
		}
	}
	balances := make([]CounterpartyBalance, 0, len(order))
	for _, id := range order {
		balances = append(balances, CounterpartyBalance{
			CounterpartyID: id,
			Balance:        NetBalance(id, txs),
		})
	}
	return balances
}

// TopDebtors ranks the counterparties that owe the user, largest balance
// first, ties broken by first appearance. At most n results.
func TopDebtors(txs []Transaction, n int) []CounterpartyBalance {
	var debtors []CounterpartyBalance
	for _, b := range balancesInOrder(txs) {
		if b.Balance.IsPositive() {
			debtors = append(debtors, b)
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance.GreaterThan(debtors[j].Balance)
	})
	return truncate(debtors, n)
}

// TopCreditors ranks the counterparties the user owes, largest debt first,
// ties broken by first appearance. At most n results.
func TopCreditors(txs []Transaction, n int) []CounterpartyBalance {
	var creditors []CounterpartyBalance
	for _, b := range balancesInOrder(txs) {
		if b.Balance.IsNegative() {
			creditors = append(creditors, b)
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance.LessThan(creditors[j].Balance)
	})
	return truncate(creditors, n)
}

func truncate(bs []CounterpartyBalance, n int) []CounterpartyBalance {
	if n >= 0 && len(bs) > n {
		return bs[:n]
	}
	return bs
}
