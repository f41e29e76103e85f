package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	tx string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "soft-delete a transaction" }
func (*rmCmd) Usage() string {
	return `hb rm -tx <id>

  Hides a transaction from listings and balances. The row is kept and
  can be brought back with hb restore.
`
}

func (p *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tx, "tx", "", "Id of the transaction to remove.")
}

func (p *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.engine.SoftDeleteTransaction(ctx, p.tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Removed transaction %s\n", p.tx)
	return subcommands.ExitSuccess
}
