package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/renderer"
)

type logCmd struct {
	action string
	entity string
	id     string
	from   string
	to     string
	text   string
	path   string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the audit log" }
func (*logCmd) Usage() string {
	return `hb log [-action <action>] [-entity <type>] [-id <id>] [-from <date>] [-to <date>] [-text <substring>] [-path <jsonpath>]

  Displays the append-only audit log, oldest first. -text matches a
  substring anywhere in the recorded snapshots; -path is a JSONPath
  expression that must resolve in a snapshot.

Usage Examples:
# Every payment ever applied.
$ hb log -action partial-payment

# Every change that mentions a transaction.
$ hb log -entity transaction -id 4f2a...

# Entries whose snapshot has a status field.
$ hb log -path '$.status'

`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.action, "action", "", "Filter by action (create, update, delete, partial-payment, backup, restore).")
	f.StringVar(&p.entity, "entity", "", "Filter by entity type (transaction, payment, counterparty, reminder, ledger).")
	f.StringVar(&p.id, "id", "", "Filter by entity id.")
	f.StringVar(&p.from, "from", "", "Only entries at or after this date.")
	f.StringVar(&p.to, "to", "", "Only entries at or before this date.")
	f.StringVar(&p.text, "text", "", "Substring to match in details and snapshots.")
	f.StringVar(&p.path, "path", "", "JSONPath that must resolve in a snapshot.")
}

func (p *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ctx, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	q := hisaab.AuditQuery{
		AuditFilter: hisaab.AuditFilter{
			Action:     p.action,
			EntityType: p.entity,
			EntityID:   p.id,
		},
		Text: p.text,
		Path: p.path,
	}
	if q.From, err = parseTime(p.from); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitFailure
	}
	if q.To, err = parseTime(p.to); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
		return subcommands.ExitFailure
	}
	// An inclusive day bound: "-to 2025-09-01" covers that whole day.
	if !q.To.IsZero() {
		q.To = q.To.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := hisaab.QueryAudit(ctx, a.store, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying audit log: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LogMarkdown(entries))
	return subcommands.ExitSuccess
}
