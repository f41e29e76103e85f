package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
)

type addCmd struct {
	direction    string
	txType       string
	amount       string
	currency     string
	counterparty string
	account      string
	category     string
	self         bool
	consumer     string
	billCategory string
	when         string
	task         string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `hb add -dir <gave|received> -type <type> -amount <amount> [-counterparty <id> | -self]

  Records a new transaction. A transaction with a counterparty starts
  pending with its full amount due; one recorded for yourself (-self) is
  born settled.

Usage Examples:
# Record a loan of 500 given to a counterparty.
$ hb add -dir gave -type loan -amount 500 -counterparty 4f2a...

# Record a bill you paid for yourself.
$ hb add -dir gave -type bill-payment -amount 120 -self -bill electricity

`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.direction, "dir", "gave", "Direction of the transaction (gave, received).")
	f.StringVar(&p.txType, "type", "other", "Type of the transaction (loan, bill-payment, recharge, other).")
	f.StringVar(&p.amount, "amount", "", "Amount of the transaction.")
	f.StringVar(&p.currency, "currency", "", "Currency of the amount. Defaults to the configured currency.")
	f.StringVar(&p.counterparty, "counterparty", "", "Id of the counterparty.")
	f.StringVar(&p.account, "account", "cash", "Account the money moved through.")
	f.StringVar(&p.category, "category", "general", "Category of the transaction.")
	f.BoolVar(&p.self, "self", false, "The transaction is for yourself; it is born settled.")
	f.StringVar(&p.consumer, "consumer", "", "Who actually consumed the money, when not the counterparty.")
	f.StringVar(&p.billCategory, "bill", "", "Bill category for bill payments (electricity, rent, ...).")
	f.StringVar(&p.when, "time", "", "Time of the transaction (RFC 3339 or 2006-01-02). Defaults to now.")
	f.StringVar(&p.task, "task", "", "Id of a linked external task.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	direction, err := hisaab.ParseDirection(p.direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	txType, err := hisaab.ParseTransactionType(p.txType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount, err := a.parseAmount(p.amount, p.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitFailure
	}
	when, err := parseTime(p.when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := a.engine.CreateTransaction(ctx, hisaab.TransactionDraft{
		Direction:      direction,
		Type:           txType,
		Amount:         amount,
		AccountID:      p.account,
		CategoryID:     p.category,
		CounterpartyID: p.counterparty,
		Time:           when,
		ForSelf:        p.self,
		ConsumerID:     p.consumer,
		BillCategory:   p.billCategory,
		LinkedTaskID:   p.task,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created transaction %s (%s, %s due)\n", tx.ID, tx.Status, tx.RemainingDue)
	return subcommands.ExitSuccess
}

// parseTime accepts an RFC 3339 instant or a plain date. Empty means now.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
