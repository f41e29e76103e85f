package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCounterpartyCmd struct {
	name  string
	phone string
	notes string
}

func (*addCounterpartyCmd) Name() string     { return "add-counterparty" }
func (*addCounterpartyCmd) Synopsis() string { return "register a new counterparty" }
func (*addCounterpartyCmd) Usage() string {
	return `hb add-counterparty -name <name> [-phone <phone>] [-notes <notes>]

  Registers a person or business you exchange money with. Transactions
  reference counterparties by the id printed here.
`
}

func (p *addCounterpartyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Display name of the counterparty.")
	f.StringVar(&p.phone, "phone", "", "Phone number.")
	f.StringVar(&p.notes, "notes", "", "Free-form notes.")
}

func (p *addCounterpartyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	c, err := a.engine.CreateCounterparty(ctx, p.name, p.phone, p.notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating counterparty: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created counterparty %s (%s)\n", c.ID, c.DisplayName)
	return subcommands.ExitSuccess
}

type counterpartiesCmd struct{}

func (*counterpartiesCmd) Name() string     { return "counterparties" }
func (*counterpartiesCmd) Synopsis() string { return "list counterparties and their net balances" }
func (*counterpartiesCmd) Usage() string {
	return `hb counterparties

  Lists every counterparty with its id and net balance. A positive
  balance means they owe you.
`
}

func (*counterpartiesCmd) SetFlags(f *flag.FlagSet) {}

func (p *counterpartiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	counterparties, err := a.store.ListCounterparties(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing counterparties: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, c := range counterparties {
		balance, err := a.engine.NetBalance(ctx, c.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing balance of %q: %v\n", c.ID, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s\t%s\t%s\n", c.ID, c.DisplayName, balance.SignedString())
	}
	return subcommands.ExitSuccess
}
