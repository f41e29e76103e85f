package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/renderer"
)

type summaryCmd struct {
	topN int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the whole-ledger position" }
func (*summaryCmd) Usage() string {
	return `hb summary [-n <count>]

  Shows the totals owed to you and by you, the open transaction count,
  and the top debtors and creditors.
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.topN, "n", 0, "How many debtors/creditors to rank. Defaults to the configured value.")
}

func (p *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n := p.topN
	if n <= 0 {
		n = a.cfg.TopN
	}

	s, err := buildSummary(ctx, a, n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(s))
	return subcommands.ExitSuccess
}

// buildSummary assembles the summary report data from the ledger.
func buildSummary(ctx context.Context, a *app, topN int) (*renderer.Summary, error) {
	owedToUser, userOwes, err := a.engine.PortfolioTotals(ctx)
	if err != nil {
		return nil, err
	}
	debtors, err := a.engine.TopDebtors(ctx, topN)
	if err != nil {
		return nil, err
	}
	creditors, err := a.engine.TopCreditors(ctx, topN)
	if err != nil {
		return nil, err
	}
	txs, err := a.store.ListTransactions(ctx, hisaab.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("cannot list transactions: %w", err)
	}
	name, err := a.counterpartyNames(ctx)
	if err != nil {
		return nil, err
	}

	s := &renderer.Summary{
		Date:      time.Now().Format("2006-01-02"),
		OwedToYou: owedToUser,
		YouOwe:    userOwes,
		Net:       owedToUser.Sub(userOwes),
	}
	for _, tx := range txs {
		switch tx.Status {
		case hisaab.Pending, hisaab.PartiallySettled:
			s.OpenCount++
		case hisaab.Settled:
			s.SettledCount++
		}
	}
	for _, d := range debtors {
		s.TopDebtors = append(s.TopDebtors, renderer.BalanceLine{Name: name(d.CounterpartyID), Balance: d.Balance})
	}
	for _, c := range creditors {
		// Creditor balances are negative; the report shows the magnitude owed.
		s.TopCreditors = append(s.TopCreditors, renderer.BalanceLine{Name: name(c.CounterpartyID), Balance: c.Balance.Abs()})
	}
	return s, nil
}
