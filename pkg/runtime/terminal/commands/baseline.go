package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type BaselineCmd struct {
	profilePath string
	reset       bool
	session     Session
}

func NewBaselineCmd(session Session) *cobra.Command {
	bc := &BaselineCmd{session: session}
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Capture the baseline snapshot of current scores",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.profilePath, "profile", "", "Path to the organization profile")
	cmd.Flags().BoolVar(&bc.reset, "reset", false, "Replace an existing baseline")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (bc *BaselineCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ctrl, err := bc.session(ctx, bc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	if bc.reset {
		b, err := ctrl.ResetBaseline(ctx)
		if err != nil {
			return fmt.Errorf("failed to reset baseline: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Baseline reset at %s (overall %.1f)\n",
			b.CreatedAt.Format(time.RFC3339), b.Overall)
		return nil
	}

	b, err := ctrl.CreateBaseline(ctx)
	if err != nil {
		return fmt.Errorf("failed to capture baseline: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Baseline captured at %s (overall %.1f)\n",
		b.CreatedAt.Format(time.RFC3339), b.Overall)
	return nil
}
