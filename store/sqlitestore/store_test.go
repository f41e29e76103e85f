package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hisaab-app/hisaab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTransactionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := hisaab.Transaction{
		ID:             "t1",
		Direction:      hisaab.Gave,
		Type:           hisaab.Loan,
		Amount:         hisaab.M(499.50, "INR"),
		AccountID:      "cash",
		CategoryID:     "general",
		CounterpartyID: "c1",
		Time:           time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
		RemainingDue:   hisaab.M(499.50, "INR"),
		Status:         hisaab.Pending,
		UpdatedAt:      time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
	}
	if err := s.PutTransaction(ctx, want); err != nil {
		t.Fatalf("PutTransaction: %v", err)
	}

	got, err := s.GetTransaction(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("round trip changed the transaction:\n got %+v\nwant %+v", got, want)
	}
	if !got.Amount.Equal(hisaab.M(499.50, "INR")) {
		t.Errorf("amount came back as %v, exactness lost", got.Amount.Decimal())
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetTransaction(context.Background(), "missing"); !errors.Is(err, hisaab.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := s.InTx(ctx, func(v hisaab.Store) error {
		if err := v.PutCounterparty(ctx, hisaab.Counterparty{ID: "c1", DisplayName: "Asha", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx should propagate the callback error, got %v", err)
	}
	if _, err := s.GetCounterparty(ctx, "c1"); !errors.Is(err, hisaab.ErrNotFound) {
		t.Errorf("rollback should drop the counterparty, got %v", err)
	}
}

func TestAuditAppendOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e := hisaab.AuditEntry{
			ID:         fmt.Sprintf("a%d", i),
			Action:     hisaab.ActionCreate,
			EntityType: hisaab.EntityCounterparty,
			Timestamp:  time.Date(2025, 9, 1, 0, 0, i, 0, time.UTC),
		}
		if err := s.AppendAudit(ctx, e); err != nil {
			t.Fatalf("AppendAudit: %v", err)
		}
	}

	entries, err := s.ListAudit(ctx, hisaab.AuditFilter{})
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if want := fmt.Sprintf("a%d", i); e.ID != want {
			t.Errorf("entries[%d] = %s, want %s (append order)", i, e.ID, want)
		}
	}
}

func TestReminderFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reminders := []hisaab.Reminder{
		{ID: "r1", TargetType: hisaab.TargetTransaction, TargetID: "t1", DueTime: time.Now(), Status: hisaab.Upcoming},
		{ID: "r2", TargetType: hisaab.TargetTransaction, TargetID: "t2", DueTime: time.Now(), Status: hisaab.Done},
		{ID: "r3", TargetType: hisaab.TargetBill, TargetID: "rent", DueTime: time.Now(), Status: hisaab.Upcoming},
	}
	for _, r := range reminders {
		if err := s.PutReminder(ctx, r); err != nil {
			t.Fatalf("PutReminder: %v", err)
		}
	}

	got, err := s.ListReminders(ctx, hisaab.ReminderFilter{
		TargetTypes: []hisaab.ReminderTarget{hisaab.TargetTransaction},
		Statuses:    []hisaab.ReminderStatus{hisaab.Upcoming},
	})
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("want [r1], got %v", got)
	}
}

func TestSoftDeletedPaymentFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Payments reference their transaction, the row must exist first.
	parent := hisaab.Transaction{
		ID: "t1", Direction: hisaab.Gave, Type: hisaab.Loan,
		Amount: hisaab.M(30, "INR"), AccountID: "cash", CategoryID: "general",
		Time: time.Now(), RemainingDue: hisaab.M(30, "INR"), Status: hisaab.Pending, UpdatedAt: time.Now(),
	}
	if err := s.PutTransaction(ctx, parent); err != nil {
		t.Fatalf("PutTransaction: %v", err)
	}

	live := hisaab.PartialPayment{ID: "p1", TransactionID: "t1", Amount: hisaab.M(10, "INR"), Timestamp: time.Now()}
	dead := hisaab.PartialPayment{ID: "p2", TransactionID: "t1", Amount: hisaab.M(20, "INR"), Timestamp: time.Now(), Deleted: true}
	for _, p := range []hisaab.PartialPayment{live, dead} {
		if err := s.PutPayment(ctx, p); err != nil {
			t.Fatalf("PutPayment: %v", err)
		}
	}

	surviving, err := s.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: "t1"})
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(surviving) != 1 || surviving[0].ID != "p1" {
		t.Errorf("default listing must hide deleted payments, got %v", surviving)
	}

	all, _ := s.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: "t1", IncludeDeleted: true})
	if len(all) != 2 {
		t.Errorf("IncludeDeleted should return both rows, got %d", len(all))
	}
}
