package hisaab

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine applies the settlement rules: it is the only writer of the ledger.
// Every mutation goes through one store commit and leaves an audit trail.
type Engine struct {
	store Store
	clock Clock
	log   zerolog.Logger
}

// NewEngine creates a settlement engine over the given store.
func NewEngine(store Store, clock Clock, log zerolog.Logger) *Engine {
	return &Engine{store: store, clock: clock, log: log}
}

// TransactionDraft carries the caller-supplied fields of a new transaction.
type TransactionDraft struct {
	Direction      Direction
	Type           TransactionType
	Amount         Money
	AccountID      string
	CategoryID     string
	CounterpartyID string // empty means self
	Time           time.Time
	ForSelf        bool
	ConsumerID     string
	BillCategory   string
	LinkedTaskID   string
}

// Outcome reports the settlement state of a transaction after a payment was
// applied or removed. Overpaid is zero unless the payments exceed the amount;
// a surplus is a success, not an error, and is never shown as negative debt.
type Outcome struct {
	TransactionID string
	RemainingDue  Money
	Status        Status
	Overpaid      Money
}

// Surplus reports whether the transaction is overpaid.
func (o Outcome) Surplus() bool { return o.Overpaid.IsPositive() }

// CreateTransaction validates the draft and persists a new transaction.
//
// A transaction for self is born settled with zero remaining due: there is
// no debt to track. Any other transaction starts pending with the full
// amount due. Validation failures persist nothing.
func (e *Engine) CreateTransaction(ctx context.Context, draft TransactionDraft) (Transaction, error) {
	if !draft.Amount.IsPositive() {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if draft.AccountID == "" {
		return Transaction{}, &ValidationError{Field: "account", Reason: "is required"}
	}
	if draft.CategoryID == "" {
		return Transaction{}, &ValidationError{Field: "category", Reason: "is required"}
	}

	now := e.clock.Now()
	when := draft.Time
	if when.IsZero() {
		when = now
	}

	tx := Transaction{
		ID:             uuid.NewString(),
		Direction:      draft.Direction,
		Type:           draft.Type,
		Amount:         draft.Amount,
		AccountID:      draft.AccountID,
		CategoryID:     draft.CategoryID,
		CounterpartyID: draft.CounterpartyID,
		Time:           when,
		ForSelf:        draft.ForSelf,
		ConsumerID:     draft.ConsumerID,
		BillCategory:   draft.BillCategory,
		LinkedTaskID:   draft.LinkedTaskID,
		UpdatedAt:      now,
	}
	if draft.ForSelf {
		// Self-paid: nothing to settle, the status rule never runs.
		tx.RemainingDue = draft.Amount.Sub(draft.Amount)
		tx.Status = Settled
	} else {
		tx.RemainingDue = draft.Amount
		tx.Status = Pending
	}

	err := e.store.InTx(ctx, func(s Store) error {
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		if _, err := rec.Record(ctx, ActionCreate, EntityTransaction, tx.ID, nil, tx, ""); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}
	e.log.Info().Str("transaction", tx.ID).Stringer("status", tx.Status).Msg("transaction created")
	return tx, nil
}

// ApplyPayment records a partial payment against a transaction and updates
// its remaining due and status in the same commit.
//
// After the call, remaining due equals the transaction amount minus the sum
// of its surviving payments, exactly. If the transaction just settled, its
// upcoming reminders are cancelled. Rejections persist nothing.
func (e *Engine) ApplyPayment(ctx context.Context, transactionID string, amount Money, direction PaymentDirection, method string, when time.Time, notes string) (Outcome, error) {
	if !amount.IsPositive() {
		return Outcome{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	now := e.clock.Now()
	if when.IsZero() {
		when = now
	}

	var out Outcome
	err := e.store.InTx(ctx, func(s Store) error {
		tx, err := s.GetTransaction(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", transactionID, err)
		}
		if tx.Status == Cancelled {
			return fmt.Errorf("transaction %q: %w", transactionID, ErrCancelled)
		}
		before := tx

		payment := PartialPayment{
			ID:            uuid.NewString(),
			TransactionID: tx.ID,
			Amount:        amount,
			Direction:     direction,
			Method:        method,
			Timestamp:     when,
			Notes:         notes,
		}
		if err := s.PutPayment(ctx, payment); err != nil {
			return fmt.Errorf("cannot persist payment: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		if _, err := rec.Record(ctx, ActionPartialPayment, EntityPayment, payment.ID, nil, payment, "on transaction "+tx.ID); err != nil {
			return err
		}

		remaining, err := outstanding(ctx, s, tx)
		if err != nil {
			return err
		}
		tx.RemainingDue = remaining
		tx.Status = ComputeStatus(remaining, tx.Amount)
		tx.UpdatedAt = now
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		if _, err := rec.Record(ctx, ActionUpdate, EntityTransaction, tx.ID, before, tx, "payment applied"); err != nil {
			return err
		}

		if tx.Status == Settled && before.Status != Settled {
			if err := clearRemindersFor(ctx, s, rec, tx.ID); err != nil {
				return err
			}
		}

		out = outcomeFor(tx)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	e.log.Info().
		Str("transaction", out.TransactionID).
		Stringer("remaining", out.RemainingDue).
		Stringer("status", out.Status).
		Bool("surplus", out.Surplus()).
		Msg("payment applied")
	return out, nil
}

// DeletePayment removes a partial payment (soft delete) and recomputes the
// parent transaction's remaining due and status, the inverse of apply.
func (e *Engine) DeletePayment(ctx context.Context, paymentID string) (Outcome, error) {
	now := e.clock.Now()

	var out Outcome
	err := e.store.InTx(ctx, func(s Store) error {
		payment, err := s.GetPayment(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("payment %q: %w", paymentID, err)
		}
		if payment.Deleted {
			return fmt.Errorf("payment %q: %w", paymentID, ErrPaymentDeleted)
		}
		tx, err := s.GetTransaction(ctx, payment.TransactionID)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", payment.TransactionID, err)
		}
		if tx.Status == Cancelled {
			return fmt.Errorf("transaction %q: %w", tx.ID, ErrCancelled)
		}
		before := tx

		deleted := payment
		deleted.Deleted = true
		if err := s.PutPayment(ctx, deleted); err != nil {
			return fmt.Errorf("cannot persist payment: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		if _, err := rec.Record(ctx, ActionDelete, EntityPayment, payment.ID, payment, nil, "on transaction "+tx.ID); err != nil {
			return err
		}

		remaining, err := outstanding(ctx, s, tx)
		if err != nil {
			return err
		}
		tx.RemainingDue = remaining
		tx.Status = ComputeStatus(remaining, tx.Amount)
		tx.UpdatedAt = now
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		if _, err := rec.Record(ctx, ActionUpdate, EntityTransaction, tx.ID, before, tx, "payment deleted"); err != nil {
			return err
		}

		out = outcomeFor(tx)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	e.log.Info().
		Str("payment", paymentID).
		Str("transaction", out.TransactionID).
		Stringer("remaining", out.RemainingDue).
		Msg("payment deleted")
	return out, nil
}

// CancelTransaction marks a pending or partially settled transaction
// cancelled. Cancelled transactions are excluded from every balance and may
// never receive payments again. A settled transaction cannot be cancelled;
// deleting its payments reopens it instead.
func (e *Engine) CancelTransaction(ctx context.Context, transactionID string) error {
	now := e.clock.Now()
	return e.store.InTx(ctx, func(s Store) error {
		tx, err := s.GetTransaction(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", transactionID, err)
		}
		if tx.Status == Cancelled {
			return fmt.Errorf("transaction %q: %w", transactionID, ErrCancelled)
		}
		if tx.Status == Settled {
			return fmt.Errorf("transaction %q: %w", transactionID, ErrSettled)
		}
		before := tx
		tx.Status = Cancelled
		tx.UpdatedAt = now
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err = rec.Record(ctx, ActionUpdate, EntityTransaction, tx.ID, before, tx, "cancelled")
		return err
	})
}

// SoftDeleteTransaction hides a transaction from listings and aggregates.
// The row is kept and can be restored.
func (e *Engine) SoftDeleteTransaction(ctx context.Context, transactionID string) error {
	now := e.clock.Now()
	return e.store.InTx(ctx, func(s Store) error {
		tx, err := s.GetTransaction(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", transactionID, err)
		}
		if tx.SoftDeleted {
			return nil
		}
		before := tx
		tx.SoftDeleted = true
		tx.UpdatedAt = now
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err = rec.Record(ctx, ActionDelete, EntityTransaction, tx.ID, before, nil, "soft deleted")
		return err
	})
}

// RestoreTransaction undoes a soft delete.
func (e *Engine) RestoreTransaction(ctx context.Context, transactionID string) error {
	now := e.clock.Now()
	return e.store.InTx(ctx, func(s Store) error {
		tx, err := s.GetTransaction(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", transactionID, err)
		}
		if !tx.SoftDeleted {
			return nil
		}
		before := tx
		tx.SoftDeleted = false
		tx.UpdatedAt = now
		if err := s.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("cannot persist transaction: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err = rec.Record(ctx, ActionUpdate, EntityTransaction, tx.ID, before, tx, "restored")
		return err
	})
}

// CreateCounterparty persists a new counterparty.
func (e *Engine) CreateCounterparty(ctx context.Context, displayName, phone, notes string) (Counterparty, error) {
	if displayName == "" {
		return Counterparty{}, &ValidationError{Field: "displayName", Reason: "is required"}
	}
	c := Counterparty{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Phone:       phone,
		Notes:       notes,
		CreatedAt:   e.clock.Now(),
	}
	err := e.store.InTx(ctx, func(s Store) error {
		if err := s.PutCounterparty(ctx, c); err != nil {
			return fmt.Errorf("cannot persist counterparty: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err := rec.Record(ctx, ActionCreate, EntityCounterparty, c.ID, nil, c, "")
		return err
	})
	if err != nil {
		return Counterparty{}, err
	}
	return c, nil
}

// CreateReminder persists a new reminder.
func (e *Engine) CreateReminder(ctx context.Context, target ReminderTarget, targetID string, due time.Time, repeat string) (Reminder, error) {
	if due.IsZero() {
		return Reminder{}, &ValidationError{Field: "dueTime", Reason: "is required"}
	}
	r := Reminder{
		ID:            uuid.NewString(),
		TargetType:    target,
		TargetID:      targetID,
		DueTime:       due,
		RepeatPattern: repeat,
		Status:        Upcoming,
	}
	err := e.store.InTx(ctx, func(s Store) error {
		if err := s.PutReminder(ctx, r); err != nil {
			return fmt.Errorf("cannot persist reminder: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err := rec.Record(ctx, ActionCreate, EntityReminder, r.ID, nil, r, "")
		return err
	})
	if err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// SnoozeReminder pushes a reminder's due time forward and counts the snooze.
func (e *Engine) SnoozeReminder(ctx context.Context, reminderID string, until time.Time) error {
	if until.IsZero() {
		return &ValidationError{Field: "until", Reason: "is required"}
	}
	return e.store.InTx(ctx, func(s Store) error {
		r, err := s.GetReminder(ctx, reminderID)
		if err != nil {
			return fmt.Errorf("reminder %q: %w", reminderID, err)
		}
		before := r
		r.DueTime = until
		r.Status = Snoozed
		r.IgnoredCount++
		if err := s.PutReminder(ctx, r); err != nil {
			return fmt.Errorf("cannot persist reminder: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err = rec.Record(ctx, ActionUpdate, EntityReminder, r.ID, before, r, "snoozed")
		return err
	})
}

// MarkReminderDone closes a reminder.
func (e *Engine) MarkReminderDone(ctx context.Context, reminderID string) error {
	return e.store.InTx(ctx, func(s Store) error {
		r, err := s.GetReminder(ctx, reminderID)
		if err != nil {
			return fmt.Errorf("reminder %q: %w", reminderID, err)
		}
		if r.Status == Done {
			return nil
		}
		before := r
		r.Status = Done
		if err := s.PutReminder(ctx, r); err != nil {
			return fmt.Errorf("cannot persist reminder: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err = rec.Record(ctx, ActionUpdate, EntityReminder, r.ID, before, r, "done")
		return err
	})
}

// outstanding computes the exact remaining due of tx from its surviving
// payments. This is the source of truth behind the cached RemainingDue.
func outstanding(ctx context.Context, s Store, tx Transaction) (Money, error) {
	payments, err := s.ListPayments(ctx, PaymentFilter{TransactionID: tx.ID})
	if err != nil {
		return Money{}, fmt.Errorf("cannot list payments of %q: %w", tx.ID, err)
	}
	paid := M(0, tx.Amount.Currency())
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return tx.Amount.Sub(paid), nil
}

func outcomeFor(tx Transaction) Outcome {
	out := Outcome{
		TransactionID: tx.ID,
		RemainingDue:  tx.RemainingDue,
		Status:        tx.Status,
	}
	if tx.RemainingDue.IsNegative() {
		out.Overpaid = tx.RemainingDue.Abs()
	}
	return out
}

// clearRemindersFor cancels every upcoming reminder targeting the
// transaction. Reminders are soft-cancelled, not deleted, so the history
// stays auditable.
func clearRemindersFor(ctx context.Context, s Store, rec *Recorder, transactionID string) error {
	reminders, err := s.ListReminders(ctx, ReminderFilter{
		TargetTypes: []ReminderTarget{TargetTransaction},
		TargetID:    transactionID,
		Statuses:    []ReminderStatus{Upcoming},
	})
	if err != nil {
		return fmt.Errorf("cannot list reminders of %q: %w", transactionID, err)
	}
	for _, r := range reminders {
		before := r
		r.Status = ReminderCancelled
		if err := s.PutReminder(ctx, r); err != nil {
			return fmt.Errorf("cannot persist reminder %q: %w", r.ID, err)
		}
		if _, err := rec.Record(ctx, ActionUpdate, EntityReminder, r.ID, before, r, "auto-cleared on settlement"); err != nil {
			return err
		}
	}
	return nil
}

// NetBalance loads the active transaction set and derives the net balance
// of one counterparty. Positive means they owe the user.
func (e *Engine) NetBalance(ctx context.Context, counterpartyID string) (Money, error) {
	txs, err := e.store.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return Money{}, fmt.Errorf("cannot list transactions: %w", err)
	}
	return NetBalance(counterpartyID, txs), nil
}

// PortfolioTotals loads the active transaction set and derives the
// direction-partitioned totals.
func (e *Engine) PortfolioTotals(ctx context.Context) (owedToUser, userOwes Money, err error) {
	txs, err := e.store.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return Money{}, Money{}, fmt.Errorf("cannot list transactions: %w", err)
	}
	owedToUser, userOwes = PortfolioTotals(txs)
	return owedToUser, userOwes, nil
}

// TopDebtors loads the active transaction set and ranks counterparties that
// owe the user.
func (e *Engine) TopDebtors(ctx context.Context, n int) ([]CounterpartyBalance, error) {
	txs, err := e.store.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("cannot list transactions: %w", err)
	}
	return TopDebtors(txs, n), nil
}

// TopCreditors loads the active transaction set and ranks counterparties the
// user owes.
func (e *Engine) TopCreditors(ctx context.Context, n int) ([]CounterpartyBalance, error) {
	txs, err := e.store.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("cannot list transactions: %w", err)
	}
	return TopCreditors(txs, n), nil
}
