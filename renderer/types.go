package renderer

import (
	"github.com/hisaab-app/hisaab"
)

// Summary is the data model behind the summary report.
type Summary struct {
	Date         string
	OwedToYou    hisaab.Money // total outstanding others owe the user
	YouOwe       hisaab.Money // total outstanding the user owes others
	Net          hisaab.Money
	OpenCount    int // pending or partially settled transactions
	SettledCount int
	TopDebtors   []BalanceLine
	TopCreditors []BalanceLine
}

// BalanceLine is one counterparty row of a top-N listing.
type BalanceLine struct {
	Name    string
	Balance hisaab.Money
}

// Balance is the data model behind the per-counterparty balance report.
type Balance struct {
	Counterparty string
	Net          hisaab.Money
	Rows         []TransactionRow
}

// TransactionRow is one transaction line of a balance report.
type TransactionRow struct {
	ID        string
	When      string
	Direction string
	Type      string
	Amount    hisaab.Money
	Remaining hisaab.Money
	Status    string
}
