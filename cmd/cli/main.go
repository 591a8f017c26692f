package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/export/excel"
	"github.com/de-tools/govern-atlas/pkg/export/jsonexport"
	"github.com/de-tools/govern-atlas/pkg/export/word"
	"github.com/de-tools/govern-atlas/pkg/runtime/terminal"
	"github.com/de-tools/govern-atlas/pkg/services/audit"
	"github.com/de-tools/govern-atlas/pkg/services/catalog"
	"github.com/de-tools/govern-atlas/pkg/services/config"
	"github.com/de-tools/govern-atlas/pkg/services/plan"
	"github.com/de-tools/govern-atlas/pkg/services/project"
	"github.com/de-tools/govern-atlas/pkg/services/tracker"
	"github.com/de-tools/govern-atlas/pkg/store/sqlite"
	sqliteaudit "github.com/de-tools/govern-atlas/pkg/store/sqlite/audit"
	"github.com/de-tools/govern-atlas/pkg/store/state"
)

func main() {
	registry := export.NewRegistry()
	_ = registry.Register("json", jsonexport.Factory)
	_ = registry.Register("excel", excel.Factory)
	_ = registry.Register("word-executive", word.ExecutiveFactory)
	_ = registry.Register("word-technical", word.TechnicalFactory)

	cli := terminal.NewCLI(terminal.Options{
		Session:  openSession,
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openSession(ctx context.Context, profilePath string) (*project.Controller, error) {
	org, err := config.LoadProfile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load org profile: %w", err)
	}

	pillars := catalog.Default()
	if dir := os.Getenv("GOVERN_CATALOG_DIR"); dir != "" {
		pillars, err = catalog.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog packs: %w", err)
		}
	}

	dbPath := os.Getenv("GOVERN_DB")
	if dbPath == "" {
		dbPath = "govern-atlas.db"
	}
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	auditStore, err := sqliteaudit.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit store: %w", err)
	}
	auditLog, err := audit.NewService(auditStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	stateDir := os.Getenv("GOVERN_STATE_DIR")
	if stateDir == "" {
		stateDir = "."
	}
	stateStore, err := state.NewFileStore(stateDir, org.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create state store: %w", err)
	}

	return project.LoadOrCreate(ctx, org.Name, *org, pillars, project.Dependencies{
		Audit:   auditLog,
		State:   stateStore,
		Tracker: tracker.DefaultSettings(),
		Plan:    plan.DefaultSettings(),
	})
}
