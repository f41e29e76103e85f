// Package memstore is an in-memory implementation of the ledger store.
// It backs tests and ephemeral runs; data is lost on exit.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/logger"
)

// Store keeps every entity in maps guarded by one lock, with insertion
// order preserved so listings are deterministic. It is safe for concurrent
// use; readers see either the pre- or post-commit state of a transaction,
// never something in between.
type Store struct {
	mu   sync.RWMutex
	data *state
}

type state struct {
	transactions map[string]hisaab.Transaction
	txOrder      []string

	payments map[string]hisaab.PartialPayment
	payOrder []string

	counterparties map[string]hisaab.Counterparty
	cpOrder        []string

	reminders map[string]hisaab.Reminder
	remOrder  []string

	audit []hisaab.AuditEntry
}

func newState() *state {
	return &state{
		transactions:   make(map[string]hisaab.Transaction),
		payments:       make(map[string]hisaab.PartialPayment),
		counterparties: make(map[string]hisaab.Counterparty),
		reminders:      make(map[string]hisaab.Reminder),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.transactions {
		c.transactions[k] = v
	}
	for k, v := range st.payments {
		c.payments[k] = v
	}
	for k, v := range st.counterparties {
		c.counterparties[k] = v
	}
	for k, v := range st.reminders {
		c.reminders[k] = v
	}
	c.txOrder = append([]string(nil), st.txOrder...)
	c.payOrder = append([]string(nil), st.payOrder...)
	c.cpOrder = append([]string(nil), st.cpOrder...)
	c.remOrder = append([]string(nil), st.remOrder...)
	c.audit = append([]hisaab.AuditEntry(nil), st.audit...)
	return c
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: newState()}
}

// InTx takes the write lock for the duration of fn and rolls the whole
// state back if fn fails, so a rejected operation persists nothing.
func (s *Store) InTx(ctx context.Context, fn func(hisaab.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(&view{data: s.data}); err != nil {
		log := logger.FromContext(ctx)
		log.Debug().Err(err).Msg("rolling back transaction")
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (hisaab.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).GetTransaction(ctx, id)
}

func (s *Store) PutTransaction(ctx context.Context, tx hisaab.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{data: s.data}).PutTransaction(ctx, tx)
}

func (s *Store) ListTransactions(ctx context.Context, f hisaab.TransactionFilter) ([]hisaab.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).ListTransactions(ctx, f)
}

func (s *Store) GetPayment(ctx context.Context, id string) (hisaab.PartialPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).GetPayment(ctx, id)
}

func (s *Store) PutPayment(ctx context.Context, p hisaab.PartialPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{data: s.data}).PutPayment(ctx, p)
}

func (s *Store) ListPayments(ctx context.Context, f hisaab.PaymentFilter) ([]hisaab.PartialPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).ListPayments(ctx, f)
}

func (s *Store) GetCounterparty(ctx context.Context, id string) (hisaab.Counterparty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).GetCounterparty(ctx, id)
}

func (s *Store) PutCounterparty(ctx context.Context, c hisaab.Counterparty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{data: s.data}).PutCounterparty(ctx, c)
}

func (s *Store) ListCounterparties(ctx context.Context) ([]hisaab.Counterparty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).ListCounterparties(ctx)
}

func (s *Store) GetReminder(ctx context.Context, id string) (hisaab.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).GetReminder(ctx, id)
}

func (s *Store) PutReminder(ctx context.Context, r hisaab.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{data: s.data}).PutReminder(ctx, r)
}

func (s *Store) ListReminders(ctx context.Context, f hisaab.ReminderFilter) ([]hisaab.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).ListReminders(ctx, f)
}

func (s *Store) AppendAudit(ctx context.Context, e hisaab.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{data: s.data}).AppendAudit(ctx, e)
}

func (s *Store) ListAudit(ctx context.Context, f hisaab.AuditFilter) ([]hisaab.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&view{data: s.data}).ListAudit(ctx, f)
}

// view operates on the state without locking; it is handed to InTx
// callbacks while the store lock is already held.
type view struct {
	data *state
}

// InTx on a view runs fn directly: the outer transaction already owns the
// lock and handles rollback.
func (v *view) InTx(ctx context.Context, fn func(hisaab.Store) error) error {
	return fn(v)
}

func (v *view) GetTransaction(ctx context.Context, id string) (hisaab.Transaction, error) {
	tx, ok := v.data.transactions[id]
	if !ok {
		return hisaab.Transaction{}, fmt.Errorf("transaction %q: %w", id, hisaab.ErrNotFound)
	}
	return tx, nil
}

func (v *view) PutTransaction(ctx context.Context, tx hisaab.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if _, exists := v.data.transactions[tx.ID]; !exists {
		v.data.txOrder = append(v.data.txOrder, tx.ID)
	}
	v.data.transactions[tx.ID] = tx
	return nil
}

func (v *view) ListTransactions(ctx context.Context, f hisaab.TransactionFilter) ([]hisaab.Transaction, error) {
	var result []hisaab.Transaction
	for _, id := range v.data.txOrder {
		if tx := v.data.transactions[id]; f.Matches(tx) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (v *view) GetPayment(ctx context.Context, id string) (hisaab.PartialPayment, error) {
	p, ok := v.data.payments[id]
	if !ok {
		return hisaab.PartialPayment{}, fmt.Errorf("payment %q: %w", id, hisaab.ErrNotFound)
	}
	return p, nil
}

func (v *view) PutPayment(ctx context.Context, p hisaab.PartialPayment) error {
	if p.ID == "" {
		return fmt.Errorf("payment id is required")
	}
	if _, exists := v.data.payments[p.ID]; !exists {
		v.data.payOrder = append(v.data.payOrder, p.ID)
	}
	v.data.payments[p.ID] = p
	return nil
}

func (v *view) ListPayments(ctx context.Context, f hisaab.PaymentFilter) ([]hisaab.PartialPayment, error) {
	var result []hisaab.PartialPayment
	for _, id := range v.data.payOrder {
		if p := v.data.payments[id]; f.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (v *view) GetCounterparty(ctx context.Context, id string) (hisaab.Counterparty, error) {
	c, ok := v.data.counterparties[id]
	if !ok {
		return hisaab.Counterparty{}, fmt.Errorf("counterparty %q: %w", id, hisaab.ErrNotFound)
	}
	return c, nil
}

func (v *view) PutCounterparty(ctx context.Context, c hisaab.Counterparty) error {
	if c.ID == "" {
		return fmt.Errorf("counterparty id is required")
	}
	if _, exists := v.data.counterparties[c.ID]; !exists {
		v.data.cpOrder = append(v.data.cpOrder, c.ID)
	}
	v.data.counterparties[c.ID] = c
	return nil
}

func (v *view) ListCounterparties(ctx context.Context) ([]hisaab.Counterparty, error) {
	result := make([]hisaab.Counterparty, 0, len(v.data.cpOrder))
	for _, id := range v.data.cpOrder {
		result = append(result, v.data.counterparties[id])
	}
	return result, nil
}

func (v *view) GetReminder(ctx context.Context, id string) (hisaab.Reminder, error) {
	r, ok := v.data.reminders[id]
	if !ok {
		return hisaab.Reminder{}, fmt.Errorf("reminder %q: %w", id, hisaab.ErrNotFound)
	}
	return r, nil
}

func (v *view) PutReminder(ctx context.Context, r hisaab.Reminder) error {
	if r.ID == "" {
		return fmt.Errorf("reminder id is required")
	}
	if _, exists := v.data.reminders[r.ID]; !exists {
		v.data.remOrder = append(v.data.remOrder, r.ID)
	}
	v.data.reminders[r.ID] = r
	return nil
}

func (v *view) ListReminders(ctx context.Context, f hisaab.ReminderFilter) ([]hisaab.Reminder, error) {
	var result []hisaab.Reminder
	for _, id := range v.data.remOrder {
		if r := v.data.reminders[id]; f.Matches(r) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (v *view) AppendAudit(ctx context.Context, e hisaab.AuditEntry) error {
	if e.ID == "" {
		return fmt.Errorf("audit entry id is required")
	}
	v.data.audit = append(v.data.audit, e)
	return nil
}

func (v *view) ListAudit(ctx context.Context, f hisaab.AuditFilter) ([]hisaab.AuditEntry, error) {
	var result []hisaab.AuditEntry
	for _, e := range v.data.audit {
		if f.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}
