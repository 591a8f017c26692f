package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/govern-atlas/pkg/services/project"

	"github.com/spf13/cobra"
)

type GapsCmd struct {
	profilePath string
	session     Session
}

func NewGapsCmd(session Session) *cobra.Command {
	gc := &GapsCmd{session: session}
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Show gap closure against the baseline",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.profilePath, "profile", "", "Path to the organization profile")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (gc *GapsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ctrl, err := gc.session(ctx, gc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	closure, err := ctrl.GapAnalysis()
	if errors.Is(err, project.ErrNoBaseline) {
		fmt.Fprintln(cmd.OutOrStdout(), "No baseline captured yet. Run 'baseline' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to compute gap closure: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Average gap closure: %.1f%%\n\n", closure.AverageGapClosure)
	for _, p := range closure.Progress {
		fmt.Fprintf(out, "%-16s target %.0f, baseline %.1f, current %.1f, closed %.1f%% (%s)\n",
			p.PillarID, p.Target, p.Baseline, p.Current, p.PercentageClosed, p.Status)
	}
	if closure.ProjectedCompletion != nil {
		fmt.Fprintf(out, "\nProjected completion: %s\n",
			closure.ProjectedCompletion.Format("2006-01-02"))
	}
	return nil
}
