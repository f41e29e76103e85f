package hisaab_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/logger"
	"github.com/hisaab-app/hisaab/store/memstore"
)

var testClock = hisaab.FixedClock{T: time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)}

func newTestEngine() (*hisaab.Engine, *memstore.Store) {
	store := memstore.New()
	return hisaab.NewEngine(store, testClock, logger.NewWithWriter(io.Discard)), store
}

func mustCreateLoan(t *testing.T, e *hisaab.Engine, amount hisaab.Money) hisaab.Transaction {
	t.Helper()
	tx, err := e.CreateTransaction(context.Background(), hisaab.TransactionDraft{
		Direction:      hisaab.Gave,
		Type:           hisaab.Loan,
		Amount:         amount,
		AccountID:      "cash",
		CategoryID:     "general",
		CounterpartyID: "asha",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	return tx
}

func TestCreateTransaction(t *testing.T) {
	e, _ := newTestEngine()

	tx := mustCreateLoan(t, e, hisaab.M(500, "INR"))
	if tx.Status != hisaab.Pending {
		t.Errorf("new loan status = %v, want pending", tx.Status)
	}
	if !tx.RemainingDue.Equal(hisaab.M(500, "INR")) {
		t.Errorf("new loan remaining = %v, want the full amount", tx.RemainingDue.Decimal())
	}
}

func TestCreateTransactionForSelf(t *testing.T) {
	e, _ := newTestEngine()

	tx, err := e.CreateTransaction(context.Background(), hisaab.TransactionDraft{
		Direction:  hisaab.Gave,
		Type:       hisaab.BillPayment,
		Amount:     hisaab.M(120, "INR"),
		AccountID:  "bank",
		CategoryID: "utilities",
		ForSelf:    true,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.Status != hisaab.Settled {
		t.Errorf("self transaction status = %v, want settled at birth", tx.Status)
	}
	if !tx.RemainingDue.IsZero() {
		t.Errorf("self transaction remaining = %v, want zero", tx.RemainingDue.Decimal())
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name  string
		draft hisaab.TransactionDraft
	}{
		{name: "zero amount", draft: hisaab.TransactionDraft{Amount: hisaab.M(0, "INR"), AccountID: "cash", CategoryID: "general"}},
		{name: "negative amount", draft: hisaab.TransactionDraft{Amount: hisaab.M(-5, "INR"), AccountID: "cash", CategoryID: "general"}},
		{name: "missing account", draft: hisaab.TransactionDraft{Amount: hisaab.M(5, "INR"), CategoryID: "general"}},
		{name: "missing category", draft: hisaab.TransactionDraft{Amount: hisaab.M(5, "INR"), AccountID: "cash"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CreateTransaction(ctx, tc.draft)
			if !hisaab.IsValidation(err) {
				t.Errorf("want a validation error, got %v", err)
			}
		})
	}

	// Rejections must persist nothing, not even audit entries.
	txs, _ := store.ListTransactions(ctx, hisaab.TransactionFilter{IncludeDeleted: true})
	entries, _ := store.ListAudit(ctx, hisaab.AuditFilter{})
	if len(txs) != 0 || len(entries) != 0 {
		t.Errorf("rejected drafts left traces: %d transactions, %d audit entries", len(txs), len(entries))
	}
}

func TestApplyPaymentLifecycle(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(500, "INR"))

	out, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(200, "INR"), hisaab.FromCounterparty, "cash", time.Time{}, "")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if out.Status != hisaab.PartiallySettled {
		t.Errorf("after 200 of 500: status = %v, want partially-settled", out.Status)
	}
	if !out.RemainingDue.Equal(hisaab.M(300, "INR")) {
		t.Errorf("after 200 of 500: remaining = %v, want 300", out.RemainingDue.Decimal())
	}

	out, err = e.ApplyPayment(ctx, tx.ID, hisaab.M(300, "INR"), hisaab.FromCounterparty, "upi", time.Time{}, "")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if out.Status != hisaab.Settled {
		t.Errorf("after full repayment: status = %v, want settled", out.Status)
	}
	if !out.RemainingDue.IsZero() {
		t.Errorf("after full repayment: remaining = %v, want zero", out.RemainingDue.Decimal())
	}
	if out.Surplus() {
		t.Error("exact repayment must not report a surplus")
	}
}

func TestApplyPaymentOverpayment(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))

	out, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(150, "INR"), hisaab.FromCounterparty, "", time.Time{}, "")
	if err != nil {
		t.Fatalf("overpayment must succeed, got %v", err)
	}
	if out.Status != hisaab.Settled {
		t.Errorf("overpaid status = %v, want settled", out.Status)
	}
	if !out.Surplus() {
		t.Error("overpayment should report a surplus")
	}
	if !out.Overpaid.Equal(hisaab.M(50, "INR")) {
		t.Errorf("overpaid = %v, want 50", out.Overpaid.Decimal())
	}

	// The surplus is never negative debt.
	net, err := e.NetBalance(ctx, "asha")
	if err != nil {
		t.Fatalf("NetBalance: %v", err)
	}
	if !net.IsZero() {
		t.Errorf("overpaid transaction should contribute zero to the balance, got %v", net.Decimal())
	}
}

func TestApplyPaymentOnCancelled(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))
	if err := e.CancelTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("CancelTransaction: %v", err)
	}

	before, _ := store.ListPayments(ctx, hisaab.PaymentFilter{IncludeDeleted: true})

	_, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(10, "INR"), hisaab.FromCounterparty, "", time.Time{}, "")
	if !errors.Is(err, hisaab.ErrCancelled) {
		t.Errorf("paying a cancelled transaction: want ErrCancelled, got %v", err)
	}

	after, _ := store.ListPayments(ctx, hisaab.PaymentFilter{IncludeDeleted: true})
	if len(after) != len(before) {
		t.Error("a rejected payment must persist nothing")
	}
}

func TestCancelSettledTransaction(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))
	if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(100, "INR"), hisaab.FromCounterparty, "", time.Time{}, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	err := e.CancelTransaction(ctx, tx.ID)
	if !errors.Is(err, hisaab.ErrSettled) {
		t.Errorf("cancelling a settled transaction: want ErrSettled, got %v", err)
	}

	// Settled is terminal, the row must be untouched.
	got, err := store.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Status != hisaab.Settled {
		t.Errorf("status = %v, want still settled", got.Status)
	}
}

func TestDeletePaymentInverse(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(500, "INR"))
	if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(200, "INR"), hisaab.FromCounterparty, "", time.Time{}, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	payments, err := store.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: tx.ID})
	if err != nil || len(payments) != 1 {
		t.Fatalf("want 1 payment, got %d (%v)", len(payments), err)
	}

	out, err := e.DeletePayment(ctx, payments[0].ID)
	if err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if out.Status != hisaab.Pending {
		t.Errorf("after undo: status = %v, want pending again", out.Status)
	}
	if !out.RemainingDue.Equal(hisaab.M(500, "INR")) {
		t.Errorf("after undo: remaining = %v, want the full amount", out.RemainingDue.Decimal())
	}

	// Undoing twice is rejected.
	if _, err := e.DeletePayment(ctx, payments[0].ID); !errors.Is(err, hisaab.ErrPaymentDeleted) {
		t.Errorf("double undo: want ErrPaymentDeleted, got %v", err)
	}
}

func TestRemainingAlwaysMatchesPayments(t *testing.T) {
	// Through an arbitrary apply/delete sequence, remaining due must equal
	// amount minus the sum of surviving payments, exactly.
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(500, "INR"))

	amounts := []float64{100, 50.25, 200, 149.75}
	for _, a := range amounts {
		if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(a, "INR"), hisaab.FromCounterparty, "", time.Time{}, ""); err != nil {
			t.Fatalf("ApplyPayment(%v): %v", a, err)
		}
	}
	payments, _ := store.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: tx.ID})
	if _, err := e.DeletePayment(ctx, payments[1].ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}

	got, err := store.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	surviving, _ := store.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: tx.ID})
	paid := hisaab.M(0, "INR")
	for _, p := range surviving {
		paid = paid.Add(p.Amount)
	}
	if want := got.Amount.Sub(paid); !got.RemainingDue.Equal(want) {
		t.Errorf("remaining = %v, want amount - payments = %v", got.RemainingDue.Decimal(), want.Decimal())
	}
	if want := hisaab.ComputeStatus(got.RemainingDue, got.Amount); got.Status != want {
		t.Errorf("status = %v, out of sync with remaining (want %v)", got.Status, want)
	}
}

func TestSettlementClearsReminders(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))
	rem, err := e.CreateReminder(ctx, hisaab.TargetTransaction, tx.ID, testClock.Now().Add(72*time.Hour), "")
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	// An unrelated reminder must survive.
	other, err := e.CreateReminder(ctx, hisaab.TargetBill, "rent", testClock.Now().Add(72*time.Hour), "monthly")
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(100, "INR"), hisaab.FromCounterparty, "", time.Time{}, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	cleared, err := store.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if cleared.Status != hisaab.ReminderCancelled {
		t.Errorf("reminder status = %v, want cancelled after settlement", cleared.Status)
	}

	kept, err := store.GetReminder(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if kept.Status != hisaab.Upcoming {
		t.Errorf("unrelated reminder status = %v, want untouched", kept.Status)
	}

	// The clearing itself is audited as a reminder update.
	entries, err := store.ListAudit(ctx, hisaab.AuditFilter{EntityType: hisaab.EntityReminder, EntityID: rem.ID, Action: "update"})
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("want 1 reminder update audit entry, got %d", len(entries))
	}
}

func TestSnoozeAndDoneReminder(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	rem, err := e.CreateReminder(ctx, hisaab.TargetBill, "rent", testClock.Now().Add(24*time.Hour), "monthly")
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	until := testClock.Now().Add(7 * 24 * time.Hour)
	if err := e.SnoozeReminder(ctx, rem.ID, until); err != nil {
		t.Fatalf("SnoozeReminder: %v", err)
	}
	got, err := store.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.Status != hisaab.Snoozed {
		t.Errorf("status = %v, want snoozed", got.Status)
	}
	if !got.DueTime.Equal(until) {
		t.Errorf("due time = %v, want %v", got.DueTime, until)
	}
	if got.IgnoredCount != 1 {
		t.Errorf("ignored count = %d, want 1", got.IgnoredCount)
	}

	if err := e.MarkReminderDone(ctx, rem.ID); err != nil {
		t.Fatalf("MarkReminderDone: %v", err)
	}
	got, err = store.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.Status != hisaab.Done {
		t.Errorf("status = %v, want done", got.Status)
	}

	// Both moves are audited, a second done is a no-op.
	if err := e.MarkReminderDone(ctx, rem.ID); err != nil {
		t.Fatalf("MarkReminderDone again: %v", err)
	}
	entries, err := store.ListAudit(ctx, hisaab.AuditFilter{EntityType: hisaab.EntityReminder, EntityID: rem.ID, Action: "update"})
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("want 2 reminder update audit entries, got %d", len(entries))
	}
}

func TestApplyPaymentAuditShape(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(500, "INR"))
	if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(200, "INR"), hisaab.FromCounterparty, "", time.Time{}, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	// One payment entry and one transaction update per apply, in order.
	paymentEntries, _ := store.ListAudit(ctx, hisaab.AuditFilter{Action: "partial-payment"})
	if len(paymentEntries) != 1 {
		t.Errorf("want exactly 1 partial-payment entry, got %d", len(paymentEntries))
	}
	updateEntries, _ := store.ListAudit(ctx, hisaab.AuditFilter{Action: "update", EntityType: hisaab.EntityTransaction, EntityID: tx.ID})
	if len(updateEntries) != 1 {
		t.Errorf("want exactly 1 transaction update entry, got %d", len(updateEntries))
	}

	// The update snapshots the before and after states.
	if len(updateEntries) == 1 {
		entry := updateEntries[0]
		if len(entry.Old) == 0 || len(entry.New) == 0 {
			t.Error("transaction update must snapshot both old and new states")
		}
	}

	all, _ := store.ListAudit(ctx, hisaab.AuditFilter{})
	// create, partial-payment, update: append order is the operation order.
	if len(all) != 3 {
		t.Fatalf("want 3 audit entries, got %d", len(all))
	}
	wantActions := []string{"create", "partial-payment", "update"}
	for i, want := range wantActions {
		if got := all[i].Action.String(); got != want {
			t.Errorf("audit[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))
	if err := e.SoftDeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("SoftDeleteTransaction: %v", err)
	}

	visible, _ := store.ListTransactions(ctx, hisaab.TransactionFilter{})
	if len(visible) != 0 {
		t.Errorf("soft-deleted transaction still listed: %d", len(visible))
	}
	all, _ := store.ListTransactions(ctx, hisaab.TransactionFilter{IncludeDeleted: true})
	if len(all) != 1 {
		t.Errorf("soft delete must keep the row, got %d", len(all))
	}

	if err := e.RestoreTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("RestoreTransaction: %v", err)
	}
	visible, _ = store.ListTransactions(ctx, hisaab.TransactionFilter{})
	if len(visible) != 1 {
		t.Errorf("restored transaction not listed")
	}
}

func TestNetBalanceThroughEngine(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	mustCreateLoan(t, e, hisaab.M(100, "INR"))
	received, err := e.CreateTransaction(ctx, hisaab.TransactionDraft{
		Direction:      hisaab.Received,
		Type:           hisaab.Loan,
		Amount:         hisaab.M(40, "INR"),
		AccountID:      "cash",
		CategoryID:     "general",
		CounterpartyID: "asha",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	net, err := e.NetBalance(ctx, "asha")
	if err != nil {
		t.Fatalf("NetBalance: %v", err)
	}
	if !net.Equal(hisaab.M(60, "INR")) {
		t.Errorf("net = %v, want 60", net.Decimal())
	}

	// Cancelling the received debt raises the net.
	if err := e.CancelTransaction(ctx, received.ID); err != nil {
		t.Fatalf("CancelTransaction: %v", err)
	}
	net, _ = e.NetBalance(ctx, "asha")
	if !net.Equal(hisaab.M(100, "INR")) {
		t.Errorf("net after cancel = %v, want 100", net.Decimal())
	}
}
