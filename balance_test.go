package hisaab

import "testing"

// tx builds a minimal transaction for balance tests.
func tx(id, counterparty string, dir Direction, amount, remaining Money, status Status) Transaction {
	return Transaction{
		ID:             id,
		CounterpartyID: counterparty,
		Direction:      dir,
		Amount:         amount,
		RemainingDue:   remaining,
		Status:         status,
	}
}

func TestNetBalance(t *testing.T) {
	txs := []Transaction{
		// They owe 100 of a 500 loan.
		tx("t1", "asha", Gave, M(500, "INR"), M(100, "INR"), PartiallySettled),
		// The user owes them 40.
		tx("t2", "asha", Received, M(40, "INR"), M(40, "INR"), Pending),
		// Another counterparty, must not leak in.
		tx("t3", "ravi", Gave, M(999, "INR"), M(999, "INR"), Pending),
	}

	if got, want := NetBalance("asha", txs), M(60, "INR"); !got.Equal(want) {
		t.Errorf("NetBalance(asha) = %v, want %v", got.Decimal(), want.Decimal())
	}
}

func TestNetBalanceExclusions(t *testing.T) {
	cancelled := tx("t1", "asha", Gave, M(100, "INR"), M(100, "INR"), Cancelled)
	deleted := tx("t2", "asha", Gave, M(100, "INR"), M(100, "INR"), Pending)
	deleted.SoftDeleted = true
	settled := tx("t3", "asha", Gave, M(100, "INR"), M(0, "INR"), Settled)
	overpaid := tx("t4", "asha", Gave, M(100, "INR"), M(-50, "INR"), Settled)

	got := NetBalance("asha", []Transaction{cancelled, deleted, settled, overpaid})
	if !got.IsZero() {
		t.Errorf("cancelled, deleted and settled transactions must not count, got %v", got.Decimal())
	}
}

func TestNetBalanceEmpty(t *testing.T) {
	if got := NetBalance("asha", nil); !got.IsZero() {
		t.Errorf("empty set should yield zero, got %v", got.Decimal())
	}
}

func TestPortfolioTotals(t *testing.T) {
	txs := []Transaction{
		tx("t1", "asha", Gave, M(500, "INR"), M(100, "INR"), PartiallySettled),
		tx("t2", "ravi", Gave, M(200, "INR"), M(200, "INR"), Pending),
		tx("t3", "meera", Received, M(80, "INR"), M(80, "INR"), Pending),
		tx("t4", "asha", Received, M(40, "INR"), M(40, "INR"), Pending),
	}

	owedToUser, userOwes := PortfolioTotals(txs)
	if want := M(300, "INR"); !owedToUser.Equal(want) {
		t.Errorf("owedToUser = %v, want %v", owedToUser.Decimal(), want.Decimal())
	}
	if want := M(120, "INR"); !userOwes.Equal(want) {
		t.Errorf("userOwes = %v, want %v", userOwes.Decimal(), want.Decimal())
	}
}

func TestTopDebtors(t *testing.T) {
	txs := []Transaction{
		tx("t1", "asha", Gave, M(100, "INR"), M(100, "INR"), Pending),
		tx("t2", "ravi", Gave, M(300, "INR"), M(300, "INR"), Pending),
		tx("t3", "meera", Gave, M(200, "INR"), M(200, "INR"), Pending),
		// A creditor, must not appear among debtors.
		tx("t4", "sam", Received, M(50, "INR"), M(50, "INR"), Pending),
	}

	got := TopDebtors(txs, 2)
	if len(got) != 2 {
		t.Fatalf("want 2 debtors, got %d", len(got))
	}
	if got[0].CounterpartyID != "ravi" || got[1].CounterpartyID != "meera" {
		t.Errorf("want [ravi meera], got [%s %s]", got[0].CounterpartyID, got[1].CounterpartyID)
	}
}

func TestTopDebtorsTies(t *testing.T) {
	// Equal balances rank by first appearance in the transaction set.
	txs := []Transaction{
		tx("t1", "first", Gave, M(100, "INR"), M(100, "INR"), Pending),
		tx("t2", "second", Gave, M(100, "INR"), M(100, "INR"), Pending),
	}
	got := TopDebtors(txs, 10)
	if len(got) != 2 || got[0].CounterpartyID != "first" {
		t.Errorf("ties must keep first appearance order, got %v", got)
	}
}

func TestTopCreditors(t *testing.T) {
	txs := []Transaction{
		tx("t1", "asha", Received, M(300, "INR"), M(300, "INR"), Pending),
		tx("t2", "ravi", Received, M(100, "INR"), M(100, "INR"), Pending),
		tx("t3", "meera", Gave, M(50, "INR"), M(50, "INR"), Pending),
	}

	got := TopCreditors(txs, 10)
	if len(got) != 2 {
		t.Fatalf("want 2 creditors, got %d", len(got))
	}
	if got[0].CounterpartyID != "asha" {
		t.Errorf("largest debt first, got %s", got[0].CounterpartyID)
	}
	if !got[0].Balance.Equal(M(-300, "INR")) {
		t.Errorf("creditor balance = %v, want -300", got[0].Balance.Decimal())
	}
}
