package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
)

type payCmd struct {
	tx        string
	amount    string
	currency  string
	direction string
	method    string
	when      string
	notes     string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a partial payment against a transaction" }
func (*payCmd) Usage() string {
	return `hb pay -tx <id> -amount <amount> [-from|-method <method>]

  Records a partial payment and updates the transaction's remaining due
  and status in one atomic step. Paying more than is due settles the
  transaction and reports the surplus.

Usage Examples:
# The counterparty paid 200 back in cash.
$ hb pay -tx 4f2a... -amount 200 -method cash

`
}

func (p *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tx, "tx", "", "Id of the transaction being paid.")
	f.StringVar(&p.amount, "amount", "", "Amount of the payment.")
	f.StringVar(&p.currency, "currency", "", "Currency of the amount. Defaults to the configured currency.")
	f.StringVar(&p.direction, "dir", "from", "Who paid: 'from' the counterparty, or 'to' the counterparty.")
	f.StringVar(&p.method, "method", "", "Payment method (cash, upi, bank, ...).")
	f.StringVar(&p.when, "time", "", "Time of the payment. Defaults to now.")
	f.StringVar(&p.notes, "notes", "", "Free-form notes.")
}

func (p *payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	amount, err := a.parseAmount(p.amount, p.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitFailure
	}
	direction, err := hisaab.ParsePaymentDirection(p.direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	when, err := parseTime(p.when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := a.engine.ApplyPayment(ctx, p.tx, amount, direction, p.method, when, p.notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error applying payment: %v\n", err)
		return subcommands.ExitFailure
	}

	printOutcome(out)
	return subcommands.ExitSuccess
}

// printOutcome reports the settlement state after a payment change.
func printOutcome(out hisaab.Outcome) {
	switch {
	case out.Surplus():
		fmt.Printf("Transaction %s is settled, overpaid by %s\n", out.TransactionID, out.Overpaid)
	case out.Status == hisaab.Settled:
		fmt.Printf("Transaction %s is settled\n", out.TransactionID)
	default:
		fmt.Printf("Transaction %s is %s, %s still due\n", out.TransactionID, out.Status, out.RemainingDue)
	}
}
