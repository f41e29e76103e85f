// Command hb is the hisaab personal ledger CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hisaab-app/hisaab/cmd"
)

func main() {
	// Shell completion: exits early when invoked by the completion hook.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Args: predict.Something}
	}
	completer := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"db":     predict.Files("*.db"),
			"v":      predict.Nothing,
		},
	}
	completer.Complete("hb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
