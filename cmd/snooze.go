package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type snoozeCmd struct {
	id    string
	until string
}

func (*snoozeCmd) Name() string     { return "snooze" }
func (*snoozeCmd) Synopsis() string { return "push a reminder's due date forward" }
func (*snoozeCmd) Usage() string {
	return `hb snooze -id <reminder-id> -until <date>

  Moves the reminder's due date and counts the snooze.

Usage Example:
$ hb snooze -id 4f2a... -until 2025-10-15

`
}

func (p *snoozeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Id of the reminder to snooze.")
	f.StringVar(&p.until, "until", "", "New due date (RFC 3339 or 2006-01-02).")
}

func (p *snoozeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	until, err := parseTime(p.until)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := a.engine.SnoozeReminder(ctx, p.id, until); err != nil {
		fmt.Fprintf(os.Stderr, "Error snoozing reminder: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Reminder %s snoozed until %s\n", p.id, until.Format("2006-01-02"))
	return subcommands.ExitSuccess
}
