package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/de-tools/govern-atlas/pkg/export"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	profilePath string
	format      string
	outPath     string
	registry    export.Registry
	session     Session
}

func NewExportCmd(session Session, registry export.Registry) *cobra.Command {
	ec := &ExportCmd{session: session, registry: registry}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the assessment in a registered format",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.profilePath, "profile", "", "Path to the organization profile")
	cmd.Flags().StringVar(&ec.format, "format", "", "Export format")
	cmd.Flags().StringVar(&ec.outPath, "out", "", "Output file path")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("format")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	exporter, err := ec.registry.Create(ec.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Registered formats: %s",
			ec.format, strings.Join(ec.registry.ListFormats(), ", "))
	}

	ctrl, err := ec.session(ctx, ec.profilePath)
	if err != nil {
		return fmt.Errorf("failed to open assessment: %w", err)
	}

	payload, err := ctrl.ExportPayload(ctx)
	if err != nil {
		return fmt.Errorf("failed to assemble export payload: %w", err)
	}

	f, err := os.Create(ec.outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", ec.outPath, err)
	}
	defer f.Close()

	if err := exporter.Export(ctx, payload, f); err != nil {
		return fmt.Errorf("failed to export %s: %w", ec.format, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s export to %s\n", ec.format, ec.outPath)
	return nil
}
