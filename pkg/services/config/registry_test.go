package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryFile = `
[contoso]
size = large
user = jordan
target_security = 90
target_alm = 70

[fabrikam]
size = small
user = sam
`

func setupRegistry(t *testing.T) Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.ini")
	require.NoError(t, os.WriteFile(path, []byte(registryFile), 0o644))

	registry, err := NewRegistry(path)
	require.NoError(t, err)
	return registry
}

func TestRegistry_GetProfiles(t *testing.T) {
	registry := setupRegistry(t)

	profiles, err := registry.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"contoso", "fabrikam"}, profiles)
}

func TestRegistry_GetProfile(t *testing.T) {
	registry := setupRegistry(t)
	ctx := context.Background()

	t.Run("profile with targets", func(t *testing.T) {
		profile, err := registry.GetProfile(ctx, "contoso")
		require.NoError(t, err)

		assert.Equal(t, "contoso", profile.Name)
		assert.Equal(t, domain.OrgSizeLarge, profile.Size)
		assert.Equal(t, "jordan", profile.User)
		assert.InDelta(t, 90.0, profile.Targets["security"], 1e-9)
		assert.InDelta(t, 70.0, profile.Targets["alm"], 1e-9)
	})

	t.Run("profile without targets", func(t *testing.T) {
		profile, err := registry.GetProfile(ctx, "fabrikam")
		require.NoError(t, err)

		assert.Equal(t, domain.OrgSizeSmall, profile.Size)
		assert.Empty(t, profile.Targets)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := registry.GetProfile(ctx, "ghost")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.ini"))
	assert.Error(t, err)
}
