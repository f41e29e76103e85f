package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printMarkdown renders markdown to the terminal. When stdout is not a
// terminal the raw markdown is printed, so piping stays clean.
func printMarkdown(content string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(content)
		return
	}
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
