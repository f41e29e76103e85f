package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/renderer"
)

type remindersCmd struct {
	all bool
}

func (*remindersCmd) Name() string     { return "reminders" }
func (*remindersCmd) Synopsis() string { return "list reminders" }
func (*remindersCmd) Usage() string {
	return `hb reminders [-all]

  Lists upcoming reminders. With -all, done, snoozed and cancelled
  reminders are shown too.
`
}

func (p *remindersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.all, "all", false, "Show reminders of every status.")
}

func (p *remindersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	filter := hisaab.ReminderFilter{}
	if !p.all {
		filter.Statuses = []hisaab.ReminderStatus{hisaab.Upcoming}
	}

	reminders, err := a.store.ListReminders(ctx, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing reminders: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RemindersMarkdown(reminders))
	return subcommands.ExitSuccess
}
