package hisaab

import (
	"fmt"
	"time"
)

// Direction tells whether money went out of the user's pocket or into it.
type Direction int

const (
	// Gave means the user handed money to the counterparty (they owe the user).
	Gave Direction = iota
	// Received means the user took money from the counterparty (the user owes them).
	Received
)

func (d Direction) String() string {
	switch d {
	case Gave:
		return "gave"
	case Received:
		return "received"
	default:
		return "unknown"
	}
}

// ParseDirection parses a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "gave":
		return Gave, nil
	case "received":
		return Received, nil
	default:
		return 0, fmt.Errorf("unknown direction: %q", s)
	}
}

func (d Direction) MarshalJSON() ([]byte, error)  { return marshalEnum(d.String()) }
func (d *Direction) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, d, ParseDirection) }

// TransactionType categorizes what the money movement was for.
type TransactionType int

const (
	Loan TransactionType = iota
	BillPayment
	Recharge
	Other
)

func (t TransactionType) String() string {
	switch t {
	case Loan:
		return "loan"
	case BillPayment:
		return "bill-payment"
	case Recharge:
		return "recharge"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "loan":
		return Loan, nil
	case "bill-payment":
		return BillPayment, nil
	case "recharge":
		return Recharge, nil
	case "other":
		return Other, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) { return marshalEnum(t.String()) }
func (t *TransactionType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, ParseTransactionType)
}

// Status is the settlement state of a transaction.
type Status int

const (
	Pending Status = iota
	PartiallySettled
	Settled
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case PartiallySettled:
		return "partially-settled"
	case Settled:
		return "settled"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "partially-settled":
		return PartiallySettled, nil
	case "settled":
		return Settled, nil
	case "cancelled":
		return Cancelled, nil
	default:
		return 0, fmt.Errorf("unknown status: %q", s)
	}
}

func (s Status) MarshalJSON() ([]byte, error)  { return marshalEnum(s.String()) }
func (s *Status) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, s, ParseStatus) }

// Transaction is the central ledger record: money given to or received from
// a counterparty, together with its cached settlement state.
//
// Amount, Direction, Type and the reference ids are fixed facts, immutable
// after creation. RemainingDue and Status are derived caches maintained by
// the settlement engine; the source of truth is Amount minus the sum of the
// transaction's non-deleted partial payments.
type Transaction struct {
	ID             string          `json:"id"`
	Direction      Direction       `json:"direction"`
	Type           TransactionType `json:"type"`
	Amount         Money           `json:"amount"`
	AccountID      string          `json:"accountId"`
	CategoryID     string          `json:"categoryId"`
	CounterpartyID string          `json:"counterpartyId,omitempty"` // empty means self
	Time           time.Time       `json:"time"`
	ForSelf        bool            `json:"forSelf,omitempty"`

	// Optional bill metadata.
	ConsumerID   string `json:"consumerId,omitempty"`
	BillCategory string `json:"billCategory,omitempty"`

	// Derived, engine-maintained.
	RemainingDue Money     `json:"remainingDue"`
	Status       Status    `json:"status"`
	UpdatedAt    time.Time `json:"updatedAt"`

	SoftDeleted  bool   `json:"softDeleted,omitempty"`
	LinkedTaskID string `json:"linkedTaskId,omitempty"` // provenance only
}

// Active reports whether the transaction participates in listings and
// aggregates.
func (t Transaction) Active() bool {
	return !t.SoftDeleted && t.Status != Cancelled
}

// Equal reports whether two transactions carry the same facts and state.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Direction == o.Direction &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.AccountID == o.AccountID &&
		t.CategoryID == o.CategoryID &&
		t.CounterpartyID == o.CounterpartyID &&
		t.Time.Equal(o.Time) &&
		t.ForSelf == o.ForSelf &&
		t.RemainingDue.Equal(o.RemainingDue) &&
		t.Status == o.Status &&
		t.SoftDeleted == o.SoftDeleted
}
