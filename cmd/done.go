package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type doneCmd struct {
	id string
}

func (*doneCmd) Name() string     { return "done" }
func (*doneCmd) Synopsis() string { return "mark a reminder done" }
func (*doneCmd) Usage() string {
	return `hb done -id <reminder-id>

  Closes the reminder. Marking an already done reminder is a no-op.
`
}

func (p *doneCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Id of the reminder to close.")
}

func (p *doneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.engine.MarkReminderDone(ctx, p.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing reminder: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Reminder %s marked done\n", p.id)
	return subcommands.ExitSuccess
}
