package hisaab

import "time"

// Counterparty is a person the user owes money to or is owed money by.
// It carries identity only; its balance is always derived from the
// transaction set, never stored here.
type Counterparty struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Phone       string    `json:"phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Favorite    bool      `json:"favorite,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
