package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/project"

	"github.com/spf13/cobra"
)

type TasksCmd struct {
	profilePath string
	taskID      string
	status      string
	evidence    string
	user        string
	comment     string
	generate    bool
	session     Session
}

func NewTasksCmd(session Session) *cobra.Command {
	tc := &TasksCmd{session: session}
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List remediation tasks, update status, or attach evidence",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.profilePath, "profile", "", "Path to the organization profile")
	cmd.Flags().StringVar(&tc.taskID, "task", "", "Task to update")
	cmd.Flags().StringVar(&tc.status, "status", "", "New task status")
	cmd.Flags().StringVar(&tc.evidence, "evidence", "", "Evidence file name to attach")
	cmd.Flags().StringVar(&tc.user, "user", "", "Acting user recorded in the audit trail")
	cmd.Flags().StringVar(&tc.comment, "comment", "", "Comment recorded with a status change")
	cmd.Flags().BoolVar(&tc.generate, "generate", false, "Generate the remediation plan first")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (tc *TasksCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ctrl, err := tc.session(ctx, tc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	if tc.generate {
		if _, err := ctrl.GeneratePlan(ctx); err != nil {
			return fmt.Errorf("failed to generate plan: %w", err)
		}
	}

	if tc.taskID != "" && tc.status != "" {
		if _, err := ctrl.SetTaskStatus(ctx, tc.taskID, domain.TaskStatus(tc.status), tc.user, tc.comment); err != nil {
			return fmt.Errorf("failed to update task %s: %w", tc.taskID, err)
		}
	}
	if tc.taskID != "" && tc.evidence != "" {
		if err := ctrl.AttachEvidence(ctx, tc.taskID, tc.evidence, tc.user); err != nil {
			return fmt.Errorf("failed to attach evidence to %s: %w", tc.taskID, err)
		}
	}

	return tc.list(cmd, ctrl)
}

func (tc *TasksCmd) list(cmd *cobra.Command, ctrl *project.Controller) error {
	p, err := ctrl.Plan()
	if errors.Is(err, project.ErrNoPlan) {
		fmt.Fprintln(cmd.OutOrStdout(), "No plan generated yet. Rerun with --generate.")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, phase := range p.Phases {
		fmt.Fprintf(out, "\n=== %s (%.0f hours) ===\n", phase.Name, phase.TotalHours)
		for _, task := range p.Tasks {
			if task.Phase != phase.Name {
				continue
			}
			fmt.Fprintf(out, "%s  %-12s  %.0fh  %s\n", task.ID, task.Status, task.AdjustedHours, task.Name)
			for _, ev := range task.Evidence {
				fmt.Fprintf(out, "    evidence: %s\n", ev)
			}
		}
	}
	return nil
}
