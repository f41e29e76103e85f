package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a ledger backup" }
func (*importCmd) Usage() string {
	return `hb import [-i <file>]

  Reads a backup produced by hb export, from stdin or a file, and loads
  it into the ledger in one transaction. Rows with the same ids are
  overwritten.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "Input file. Defaults to stdin.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	in := os.Stdin
	if p.input != "" {
		file, err := os.Open(p.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	if err := a.engine.ImportLedger(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Ledger imported.")
	return subcommands.ExitSuccess
}
