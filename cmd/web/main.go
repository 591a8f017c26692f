package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/export/excel"
	"github.com/de-tools/govern-atlas/pkg/export/jsonexport"
	"github.com/de-tools/govern-atlas/pkg/export/word"
	"github.com/de-tools/govern-atlas/pkg/server"
	"github.com/de-tools/govern-atlas/pkg/services/audit"
	"github.com/de-tools/govern-atlas/pkg/services/catalog"
	"github.com/de-tools/govern-atlas/pkg/services/config"
	"github.com/de-tools/govern-atlas/pkg/services/plan"
	"github.com/de-tools/govern-atlas/pkg/services/project"
	"github.com/de-tools/govern-atlas/pkg/services/tracker"
	"github.com/de-tools/govern-atlas/pkg/store/sqlite"
	sqliteaudit "github.com/de-tools/govern-atlas/pkg/store/sqlite/audit"
	"github.com/de-tools/govern-atlas/pkg/store/state"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var profilePath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the governance assessment web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilePath, "profile", "p", "govern.yaml",
		"Path to the organization profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	org, err := config.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to load org profile: %w", err)
	}

	pillars := catalog.Default()
	if dir := os.Getenv("GOVERN_CATALOG_DIR"); dir != "" {
		pillars, err = catalog.LoadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to load catalog packs: %w", err)
		}
	}

	dbPath := os.Getenv("GOVERN_DB")
	if dbPath == "" {
		dbPath = "govern-atlas.db"
	}
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open audit database: %w", err)
	}

	auditStore, err := sqliteaudit.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create audit store: %w", err)
	}
	auditLog, err := audit.NewService(auditStore)
	if err != nil {
		return fmt.Errorf("failed to create audit service: %w", err)
	}

	stateDir := os.Getenv("GOVERN_STATE_DIR")
	if stateDir == "" {
		stateDir = "."
	}
	if scrubbed, err := state.ScrubCorrupt(stateDir); err == nil && len(scrubbed) > 0 {
		logger.Warn().Strs("files", scrubbed).Msg("removed corrupt state files")
	}
	stateStore, err := state.NewFileStore(stateDir, org.Name)
	if err != nil {
		return fmt.Errorf("failed to create state store: %w", err)
	}

	ctrl, err := project.LoadOrCreate(ctx, org.Name, *org, pillars, project.Dependencies{
		Audit:   auditLog,
		State:   stateStore,
		Tracker: tracker.DefaultSettings(),
		Plan:    plan.DefaultSettings(),
	})
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	registry := export.NewRegistry()
	_ = registry.Register("json", jsonexport.Factory)
	_ = registry.Register("excel", excel.Factory)
	_ = registry.Register("word-executive", word.ExecutiveFactory)
	_ = registry.Register("word-technical", word.TechnicalFactory)

	logger.Info().Msgf("Profile `%s` loaded for organization `%s`.", profilePath, org.Name)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Controller: ctrl,
			Registry:   registry,
		},
	})

	return api.Start()
}
