package hisaab

import (
	"context"
	"time"
)

// TransactionFilter narrows ListTransactions. The zero value lists every
// active (not soft-deleted) transaction.
type TransactionFilter struct {
	CounterpartyID string // only transactions with this counterparty
	IncludeDeleted bool   // include soft-deleted rows
}

// PaymentFilter narrows ListPayments. The zero value lists every surviving
// payment of every transaction.
type PaymentFilter struct {
	TransactionID  string
	IncludeDeleted bool
}

// ReminderFilter narrows ListReminders.
type ReminderFilter struct {
	TargetTypes []ReminderTarget
	TargetID    string
	Statuses    []ReminderStatus
}

// AuditFilter narrows ListAudit. Entries are always returned in append
// order.
type AuditFilter struct {
	From       time.Time
	To         time.Time
	Action     string // string form of Action, empty for any
	EntityType string
	EntityID   string
}

// Store is the persistence seam of the ledger. All lookups are by id;
// entities reference each other by id only, never by embedded object.
//
// Get methods return ErrNotFound (possibly wrapped) when the id is unknown.
// Put is an upsert. Audit entries are append-only: there is no update or
// delete path for them.
type Store interface {
	// InTx runs fn against a view of the store where all writes commit
	// together or not at all. Readers never observe a partially applied fn.
	InTx(ctx context.Context, fn func(Store) error) error

	GetTransaction(ctx context.Context, id string) (Transaction, error)
	PutTransaction(ctx context.Context, tx Transaction) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]Transaction, error)

	GetPayment(ctx context.Context, id string) (PartialPayment, error)
	PutPayment(ctx context.Context, p PartialPayment) error
	ListPayments(ctx context.Context, f PaymentFilter) ([]PartialPayment, error)

	GetCounterparty(ctx context.Context, id string) (Counterparty, error)
	PutCounterparty(ctx context.Context, c Counterparty) error
	ListCounterparties(ctx context.Context) ([]Counterparty, error)

	GetReminder(ctx context.Context, id string) (Reminder, error)
	PutReminder(ctx context.Context, r Reminder) error
	ListReminders(ctx context.Context, f ReminderFilter) ([]Reminder, error)

	AppendAudit(ctx context.Context, e AuditEntry) error
	ListAudit(ctx context.Context, f AuditFilter) ([]AuditEntry, error)
}

// Matches reports whether the reminder passes the filter. Shared by store
// implementations so they agree on filter semantics.
func (f ReminderFilter) Matches(r Reminder) bool {
	if f.TargetID != "" && r.TargetID != f.TargetID {
		return false
	}
	if len(f.TargetTypes) > 0 {
		ok := false
		for _, t := range f.TargetTypes {
			if r.TargetType == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if r.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Matches reports whether the audit entry passes the filter.
func (f AuditFilter) Matches(e AuditEntry) bool {
	if !f.From.IsZero() && e.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Timestamp.After(f.To) {
		return false
	}
	if f.Action != "" && e.Action.String() != f.Action {
		return false
	}
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	return true
}

// Matches reports whether the transaction passes the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if !f.IncludeDeleted && t.SoftDeleted {
		return false
	}
	if f.CounterpartyID != "" && t.CounterpartyID != f.CounterpartyID {
		return false
	}
	return true
}

// Matches reports whether the payment passes the filter.
func (f PaymentFilter) Matches(p PartialPayment) bool {
	if !f.IncludeDeleted && p.Deleted {
		return false
	}
	if f.TransactionID != "" && p.TransactionID != f.TransactionID {
		return false
	}
	return true
}
