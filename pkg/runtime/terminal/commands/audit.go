package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/domain"

	"github.com/spf13/cobra"
)

type AuditCmd struct {
	profilePath string
	limit       int
	session     Session
}

func NewAuditCmd(session Session) *cobra.Command {
	ac := &AuditCmd{session: session}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail and its summary",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the organization profile")
	cmd.Flags().IntVar(&ac.limit, "limit", 10, "Number of recent entries to show")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ctrl, err := ac.session(ctx, ac.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	log := ctrl.Audit()
	summary, err := log.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize audit trail: %w", err)
	}
	stats, err := log.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load audit stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Entries: %d (%d stored), sessions: %d, net score change: %+.1f\n",
		summary.TotalEntries, stats.RecordsCount, summary.SessionsObserved, summary.NetScoreChange)
	if summary.FirstEntry != nil && summary.LastEntry != nil {
		fmt.Fprintf(out, "From %s to %s\n",
			summary.FirstEntry.Format(time.RFC3339), summary.LastEntry.Format(time.RFC3339))
	}

	types := make([]domain.AuditEntryType, 0, len(summary.CountsByType))
	for typ := range summary.CountsByType {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, typ := range types {
		fmt.Fprintf(out, "  %-24s %d\n", typ, summary.CountsByType[typ])
	}

	entries, err := log.EntriesByTimeDesc(ctx)
	if err != nil {
		return fmt.Errorf("failed to load audit trail: %w", err)
	}
	if ac.limit > 0 && len(entries) > ac.limit {
		entries = entries[:ac.limit]
	}
	if len(entries) > 0 {
		fmt.Fprintln(out)
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-20s %-14s %+.1f (%s)\n",
				e.At.Format("2006-01-02 15:04:05"), e.Type, e.Category,
				e.ScoreAfter-e.ScoreBefore, e.User)
		}
	}
	return nil
}
