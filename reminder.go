package hisaab

import (
	"fmt"
	"time"
)

// ReminderTarget is the kind of record a reminder points at.
type ReminderTarget int

const (
	TargetTransaction ReminderTarget = iota
	TargetCounterparty
	TargetBill
	TargetGeneric
)

func (t ReminderTarget) String() string {
	switch t {
	case TargetTransaction:
		return "transaction"
	case TargetCounterparty:
		return "counterparty"
	case TargetBill:
		return "bill"
	case TargetGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ParseReminderTarget parses a string into a ReminderTarget.
func ParseReminderTarget(s string) (ReminderTarget, error) {
	switch s {
	case "transaction":
		return TargetTransaction, nil
	case "counterparty":
		return TargetCounterparty, nil
	case "bill":
		return TargetBill, nil
	case "generic":
		return TargetGeneric, nil
	default:
		return 0, fmt.Errorf("unknown reminder target: %q", s)
	}
}

func (t ReminderTarget) MarshalJSON() ([]byte, error) { return marshalEnum(t.String()) }
func (t *ReminderTarget) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, t, ParseReminderTarget)
}

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus int

const (
	Upcoming ReminderStatus = iota
	Done
	Snoozed
	ReminderCancelled
)

func (s ReminderStatus) String() string {
	switch s {
	case Upcoming:
		return "upcoming"
	case Done:
		return "done"
	case Snoozed:
		return "snoozed"
	case ReminderCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseReminderStatus parses a string into a ReminderStatus.
func ParseReminderStatus(s string) (ReminderStatus, error) {
	switch s {
	case "upcoming":
		return Upcoming, nil
	case "done":
		return Done, nil
	case "snoozed":
		return Snoozed, nil
	case "cancelled":
		return ReminderCancelled, nil
	default:
		return 0, fmt.Errorf("unknown reminder status: %q", s)
	}
}

func (s ReminderStatus) MarshalJSON() ([]byte, error) { return marshalEnum(s.String()) }
func (s *ReminderStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, s, ParseReminderStatus)
}

// Reminder nags the user about a due date. Reminders targeting a transaction
// are cancelled by the settlement engine when that transaction settles.
type Reminder struct {
	ID            string         `json:"id"`
	TargetType    ReminderTarget `json:"targetType"`
	TargetID      string         `json:"targetId,omitempty"`
	DueTime       time.Time      `json:"dueTime"`
	RepeatPattern string         `json:"repeatPattern,omitempty"`
	Status        ReminderStatus `json:"status"`
	IgnoredCount  int            `json:"ignoredCount,omitempty"`
}
