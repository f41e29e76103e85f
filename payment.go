package hisaab

import (
	"fmt"
	"time"
)

// PaymentDirection tells which way a partial payment flowed.
type PaymentDirection int

const (
	// FromCounterparty means the counterparty paid the user back.
	FromCounterparty PaymentDirection = iota
	// ToCounterparty means the user paid the counterparty back.
	ToCounterparty
)

func (d PaymentDirection) String() string {
	switch d {
	case FromCounterparty:
		return "from-counterparty"
	case ToCounterparty:
		return "to-counterparty"
	default:
		return "unknown"
	}
}

// ParsePaymentDirection parses a string into a PaymentDirection.
func ParsePaymentDirection(s string) (PaymentDirection, error) {
	switch s {
	case "from", "from-counterparty":
		return FromCounterparty, nil
	case "to", "to-counterparty":
		return ToCounterparty, nil
	default:
		return 0, fmt.Errorf("unknown payment direction: %q", s)
	}
}

func (d PaymentDirection) MarshalJSON() ([]byte, error) { return marshalEnum(d.String()) }
func (d *PaymentDirection) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, d, ParsePaymentDirection)
}

// PartialPayment records one installment against a transaction's amount.
// Payments are append-only per transaction; removing one sets Deleted and
// forces the parent's remaining due and status to be recomputed.
type PartialPayment struct {
	ID            string           `json:"id"`
	TransactionID string           `json:"transactionId"`
	Amount        Money            `json:"amount"`
	Direction     PaymentDirection `json:"direction"`
	Method        string           `json:"method,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
	Notes         string           `json:"notes,omitempty"`
	Deleted       bool             `json:"deleted,omitempty"`
}
