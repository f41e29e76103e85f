package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type cancelCmd struct {
	tx string
}

func (*cancelCmd) Name() string     { return "cancel" }
func (*cancelCmd) Synopsis() string { return "cancel a transaction (forgive the debt)" }
func (*cancelCmd) Usage() string {
	return `hb cancel -tx <id>

  Marks a pending or partially settled transaction cancelled. It stops
  counting in every balance and may never receive payments again. The row
  and its history are kept. A settled transaction cannot be cancelled;
  undo its payments with unpay instead.
`
}

func (p *cancelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tx, "tx", "", "Id of the transaction to cancel.")
}

func (p *cancelCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.engine.CancelTransaction(ctx, p.tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error cancelling transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Cancelled transaction %s\n", p.tx)
	return subcommands.ExitSuccess
}
