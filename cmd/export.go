package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger as JSONL" }
func (*exportCmd) Usage() string {
	return `hb export [-o <file>]

  Writes the complete ledger, soft-deleted rows and audit log included,
  as one JSONL stream to stdout or to a file.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	out := os.Stdout
	if p.output != "" {
		file, err := os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	if err := a.engine.ExportLedger(ctx, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
