package hisaab_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/store/memstore"
)

func TestExportImportRoundTrip(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	c, err := e.CreateCounterparty(ctx, "Asha", "+91-99", "college friend")
	if err != nil {
		t.Fatalf("CreateCounterparty: %v", err)
	}
	tx, err := e.CreateTransaction(ctx, hisaab.TransactionDraft{
		Direction:      hisaab.Gave,
		Type:           hisaab.Loan,
		Amount:         hisaab.M(500, "INR"),
		AccountID:      "cash",
		CategoryID:     "general",
		CounterpartyID: c.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if _, err := e.ApplyPayment(ctx, tx.ID, hisaab.M(200, "INR"), hisaab.FromCounterparty, "cash", time.Time{}, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if _, err := e.CreateReminder(ctx, hisaab.TargetTransaction, tx.ID, testClock.Now().Add(24*time.Hour), ""); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	var backup bytes.Buffer
	if err := e.ExportLedger(ctx, &backup); err != nil {
		t.Fatalf("ExportLedger: %v", err)
	}

	// Every line carries a kind tag.
	for _, line := range strings.Split(strings.TrimSpace(backup.String()), "\n") {
		if !strings.HasPrefix(line, `{"kind":"`) {
			t.Fatalf("backup line without leading kind: %s", line)
		}
	}

	// Restore into a fresh store.
	fresh := memstore.New()
	e2 := hisaab.NewEngine(fresh, testClock, zerolog.Nop())
	if err := e2.ImportLedger(ctx, &backup); err != nil {
		t.Fatalf("ImportLedger: %v", err)
	}

	gotTx, err := fresh.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetTransaction after restore: %v", err)
	}
	wantTx, _ := store.GetTransaction(ctx, tx.ID)
	if !gotTx.Equal(wantTx) {
		t.Errorf("restored transaction differs:\n got %+v\nwant %+v", gotTx, wantTx)
	}

	gotC, err := fresh.GetCounterparty(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCounterparty after restore: %v", err)
	}
	if gotC.DisplayName != "Asha" || gotC.Notes != "college friend" {
		t.Errorf("restored counterparty differs: %+v", gotC)
	}

	payments, _ := fresh.ListPayments(ctx, hisaab.PaymentFilter{TransactionID: tx.ID})
	if len(payments) != 1 {
		t.Errorf("want 1 restored payment, got %d", len(payments))
	}

	// The restore itself is audited.
	restores, _ := fresh.ListAudit(ctx, hisaab.AuditFilter{Action: "restore"})
	if len(restores) != 1 {
		t.Errorf("want 1 restore audit entry, got %d", len(restores))
	}
	// And the original history came along.
	creates, _ := fresh.ListAudit(ctx, hisaab.AuditFilter{Action: "create"})
	if len(creates) == 0 {
		t.Error("restored ledger lost its audit history")
	}
}

func TestExportIncludesDeletedRows(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	tx := mustCreateLoan(t, e, hisaab.M(100, "INR"))
	if err := e.SoftDeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("SoftDeleteTransaction: %v", err)
	}

	var backup bytes.Buffer
	if err := e.ExportLedger(ctx, &backup); err != nil {
		t.Fatalf("ExportLedger: %v", err)
	}
	if !strings.Contains(backup.String(), tx.ID) {
		t.Error("a backup must include soft-deleted transactions")
	}
}

func TestImportRejectsUnknownKind(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	bad := `{"kind":"gremlin","id":"x"}` + "\n"
	if err := e.ImportLedger(ctx, strings.NewReader(bad)); err == nil {
		t.Fatal("want an error for an unknown record kind")
	}

	// The failed import must leave the store untouched.
	entries, _ := store.ListAudit(ctx, hisaab.AuditFilter{})
	if len(entries) != 0 {
		t.Errorf("failed import left %d audit entries", len(entries))
	}
}
