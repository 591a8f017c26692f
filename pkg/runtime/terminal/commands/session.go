package commands

import (
	"context"

	"github.com/de-tools/govern-atlas/pkg/services/project"
)

// Session opens the assessment controller for a profile path. Commands
// stay decoupled from store wiring; the entrypoint supplies the opener.
type Session func(ctx context.Context, profilePath string) (*project.Controller, error)
