// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/logger"
	"github.com/hisaab-app/hisaab/store/memstore"
	"github.com/hisaab-app/hisaab/store/sqlitestore"
)

// Commands lists every subcommand. A main package registers them on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&addCounterpartyCmd{},
	&counterpartiesCmd{},
	&payCmd{},
	&unpayCmd{},
	&cancelCmd{},
	&rmCmd{},
	&restoreCmd{},
	&balanceCmd{},
	&summaryCmd{},
	&topCmd{},
	&logCmd{},
	&remindCmd{},
	&remindersCmd{},
	&snoozeCmd{},
	&doneCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML config file")
var dbFile = flag.String("db", "", "Path to the ledger database file (overrides config)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// app bundles what every subcommand needs to run.
type app struct {
	cfg    hisaab.Config
	engine *hisaab.Engine
	store  hisaab.Store
	close  func() error
}

// openApp loads the configuration and opens the ledger store. The returned
// context carries the logger, for layers that do not hold one themselves.
// The caller must Close the returned app.
func openApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := hisaab.LoadConfig(*configFile)
	if err != nil {
		return nil, ctx, err
	}
	if *dbFile != "" {
		cfg.DBPath = *dbFile
	}
	if *verbose {
		cfg.Verbose = true
	}
	log := logger.New(cfg.Verbose)
	ctx = logger.WithContext(ctx, log)

	var store hisaab.Store
	closeFn := func() error { return nil }
	if cfg.DBPath == "" {
		store = memstore.New()
	} else {
		s, err := sqlitestore.Open(cfg.DBPath)
		if err != nil {
			return nil, ctx, fmt.Errorf("cannot open ledger database: %w", err)
		}
		store = s
		closeFn = s.Close
	}

	return &app{
		cfg:    cfg,
		engine: hisaab.NewEngine(store, hisaab.SystemClock{}, log),
		store:  store,
		close:  closeFn,
	}, ctx, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not close the ledger database: %v\n", err)
	}
}

// parseAmount parses a user-entered amount, applying the configured default
// currency when none is given.
func (a *app) parseAmount(amount, currency string) (hisaab.Money, error) {
	if currency == "" {
		currency = a.cfg.Currency
	}
	return hisaab.ParseMoney(amount, currency)
}

// counterpartyNames loads a lookup from counterparty id to display name.
// Unknown ids render as themselves.
func (a *app) counterpartyNames(ctx context.Context) (func(id string) string, error) {
	counterparties, err := a.store.ListCounterparties(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list counterparties: %w", err)
	}
	names := make(map[string]string, len(counterparties))
	for _, c := range counterparties {
		names[c.ID] = c.DisplayName
	}
	return func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}, nil
}
