package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/renderer"
)

type balanceCmd struct {
	counterparty string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the net balance of one counterparty" }
func (*balanceCmd) Usage() string {
	return `hb balance -counterparty <id>

  Shows the net balance of a counterparty and the transactions behind
  it. Settled and cancelled transactions do not count; soft-deleted
  ones do not show.
`
}

func (p *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.counterparty, "counterparty", "", "Id of the counterparty.")
}

func (p *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	name, err := a.counterpartyNames(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	net, err := a.engine.NetBalance(ctx, p.counterparty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balance: %v\n", err)
		return subcommands.ExitFailure
	}

	txs, err := a.store.ListTransactions(ctx, hisaab.TransactionFilter{CounterpartyID: p.counterparty})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	report := &renderer.Balance{
		Counterparty: name(p.counterparty),
		Net:          net,
	}
	for _, tx := range txs {
		report.Rows = append(report.Rows, renderer.TransactionRow{
			ID:        tx.ID,
			When:      tx.Time.Format("2006-01-02"),
			Direction: tx.Direction.String(),
			Type:      tx.Type.String(),
			Amount:    tx.Amount,
			Remaining: tx.RemainingDue,
			Status:    tx.Status.String(),
		})
	}

	printMarkdown(renderer.RenderBalance(report))
	return subcommands.ExitSuccess
}
