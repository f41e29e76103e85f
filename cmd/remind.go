package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
)

type remindCmd struct {
	target   string
	targetID string
	tx       string
	due      string
	repeat   string
}

func (*remindCmd) Name() string     { return "remind" }
func (*remindCmd) Synopsis() string { return "create a reminder" }
func (*remindCmd) Usage() string {
	return `hb remind (-tx <id> | -target <type> -id <id>) -due <date> [-repeat <pattern>]

  Creates a reminder. Reminders attached to a transaction are cleared
  automatically when that transaction settles.

Usage Examples:
# Nag about a pending loan.
$ hb remind -tx 4f2a... -due 2025-10-01

# Monthly rent bill.
$ hb remind -target bill -id rent -due 2025-10-05 -repeat monthly

`
}

func (p *remindCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.tx, "tx", "", "Id of the transaction to remind about (shorthand for -target transaction).")
	f.StringVar(&p.target, "target", "", "Target type (transaction, counterparty, bill, generic).")
	f.StringVar(&p.targetID, "id", "", "Id of the target.")
	f.StringVar(&p.due, "due", "", "Due date (RFC 3339 or 2006-01-02).")
	f.StringVar(&p.repeat, "repeat", "", "Repeat pattern (daily, weekly, monthly, ...).")
}

func (p *remindCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	target := hisaab.TargetGeneric
	targetID := p.targetID
	switch {
	case p.tx != "":
		target = hisaab.TargetTransaction
		targetID = p.tx
	case p.target != "":
		if target, err = hisaab.ParseReminderTarget(p.target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	due, err := parseTime(p.due)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
		return subcommands.ExitFailure
	}

	r, err := a.engine.CreateReminder(ctx, target, targetID, due, p.repeat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating reminder: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created reminder %s due %s\n", r.ID, r.DueTime.Format("2006-01-02"))
	return subcommands.ExitSuccess
}
