package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/govern-atlas/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

type ScoreCmd struct {
	profilePath string
	session     Session
	reporter    *export.Reporter
}

func NewScoreCmd(session Session, reporter *export.Reporter) *cobra.Command {
	sc := &ScoreCmd{session: session, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the current assessment scorecard",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the organization profile")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (sc *ScoreCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ctrl, err := sc.session(ctx, sc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	return sc.reporter.Handle(ctrl.BuildReport())
}
