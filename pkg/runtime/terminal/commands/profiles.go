package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/govern-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	registryPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List organization profiles from a shared registry file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.registryPath, "registry", "", "Path to the ini profile registry")

	_ = cmd.MarkFlagRequired("registry")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	registry, err := config.NewRegistry(pc.registryPath)
	if err != nil {
		return fmt.Errorf("failed to open profile registry %s: %w", pc.registryPath, err)
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.registryPath)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		profile, err := registry.GetProfile(ctx, name)
		if err != nil {
			return err
		}
		targets := make([]string, 0, len(profile.Targets))
		for pillar, target := range profile.Targets {
			targets = append(targets, fmt.Sprintf("%s=%.0f", pillar, target))
		}
		fmt.Fprintf(out, "%s (size %s)", name, profile.Size)
		if len(targets) > 0 {
			fmt.Fprintf(out, " targets: %s", strings.Join(targets, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
