package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
)

type topCmd struct {
	n         int
	creditors bool
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "rank counterparties by outstanding balance" }
func (*topCmd) Usage() string {
	return `hb top [-n <count>] [-creditors]

  Ranks the counterparties that owe you the most. With -creditors,
  ranks the ones you owe instead.
`
}

func (p *topCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.n, "n", 0, "How many counterparties to show. Defaults to the configured value.")
	f.BoolVar(&p.creditors, "creditors", false, "Rank the counterparties you owe.")
}

func (p *topCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n := p.n
	if n <= 0 {
		n = a.cfg.TopN
	}

	var ranked []hisaab.CounterpartyBalance
	if p.creditors {
		ranked, err = a.engine.TopCreditors(ctx, n)
	} else {
		ranked, err = a.engine.TopDebtors(ctx, n)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	name, err := a.counterpartyNames(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for i, b := range ranked {
		fmt.Printf("%d.\t%s\t%s\n", i+1, name(b.CounterpartyID), b.Balance.Abs())
	}
	return subcommands.ExitSuccess
}
