package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hisaab-app/hisaab"
)

// LogMarkdown generates a markdown report from a slice of audit entries,
// oldest first.
func LogMarkdown(entries []hisaab.AuditEntry) string {
	r := &logRenderer{Builder: &strings.Builder{}}

	section := Header(func(w io.Writer) {
		fmt.Fprintf(w, "## Audit Log\n\n")
		fmt.Fprintf(w, "| Time | Action | Entity | ID | Details |\n")
		fmt.Fprintf(w, "|:---|:---|:---|:---|:---|\n")
	}).Footer(func(w io.Writer) {
		fmt.Fprintf(w, "\n")
	})

	for _, e := range entries {
		section.PrintHeader(r)
		r.Printf("| %s | %s | %s | %s | %s |\n",
			e.Timestamp.Format(time.RFC3339), e.Action, e.EntityType, e.EntityID, e.Details)
	}
	section.PrintFooter(r)

	if len(entries) == 0 {
		r.Printf("No audit entries.\n")
	}
	return r.String()
}

// RemindersMarkdown generates a markdown report from a slice of reminders.
func RemindersMarkdown(reminders []hisaab.Reminder) string {
	r := &logRenderer{Builder: &strings.Builder{}}

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Reminders\n\n")
		fmt.Fprintf(w, "| Due | Target | Status | Ignored |\n")
		fmt.Fprintf(w, "|:---|:---|:---|---:|\n")
		printed := false
		for _, rem := range reminders {
			target := rem.TargetType.String()
			if rem.TargetID != "" {
				target = fmt.Sprintf("%s %s", target, rem.TargetID)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %d |\n",
				rem.DueTime.Format("2006-01-02"), target, rem.Status, rem.IgnoredCount)
			printed = true
		}
		return printed
	})

	if len(reminders) == 0 {
		r.Printf("No reminders.\n")
	}
	return r.String()
}

// logRenderer formats report rows into a markdown string.
type logRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *logRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
