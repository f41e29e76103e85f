package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type restoreCmd struct {
	tx string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a soft-deleted transaction" }
func (*restoreCmd) Usage() string {
	return `hb restore -tx <id>

  Undoes hb rm: the transaction shows up again in listings and balances.
`
}

func (p *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tx, "tx", "", "Id of the transaction to restore.")
}

func (p *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.engine.RestoreTransaction(ctx, p.tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Restored transaction %s\n", p.tx)
	return subcommands.ExitSuccess
}
