package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/govern-atlas/pkg/export/jsonexport"

	"github.com/spf13/cobra"
)

type ImportCmd struct {
	profilePath string
	filePath    string
	session     Session
}

func NewImportCmd(session Session) *cobra.Command {
	ic := &ImportCmd{session: session}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a previously exported assessment",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.profilePath, "profile", "", "Path to the organization profile")
	cmd.Flags().StringVar(&ic.filePath, "file", "", "Path to the exported JSON file")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	f, err := os.Open(ic.filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", ic.filePath, err)
	}
	defer f.Close()

	state, err := jsonexport.Import(f)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	ctrl, err := ic.session(ctx, ic.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	if err := ctrl.ImportState(ctx, state); err != nil {
		return fmt.Errorf("failed to import state: %w", err)
	}

	card := ctrl.Scores()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (overall score %.1f)\n", ic.filePath, card.Overall)
	return nil
}
