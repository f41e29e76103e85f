package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type unpayCmd struct {
	payment string
}

func (*unpayCmd) Name() string     { return "unpay" }
func (*unpayCmd) Synopsis() string { return "undo a partial payment" }
func (*unpayCmd) Usage() string {
	return `hb unpay -payment <id>

  Soft-deletes a payment and recomputes the parent transaction's
  remaining due and status, the exact inverse of hb pay.
`
}

func (p *unpayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.payment, "payment", "", "Id of the payment to undo.")
}

func (p *unpayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	out, err := a.engine.DeletePayment(ctx, p.payment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error undoing payment: %v\n", err)
		return subcommands.ExitFailure
	}

	printOutcome(out)
	return subcommands.ExitSuccess
}
