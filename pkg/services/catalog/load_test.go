package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packA = `
pillars:
  - id: security
    name: Security & Access
    target: 85
    questions:
      - id: sec-01
        text: Is privileged admin access reviewed?
        kind: boolean
        weight: 3
        recommendation: Schedule recurring access reviews.
`

const packB = `
pillars:
  - id: alm
    name: Application Lifecycle Management
    target: 75
    questions:
      - id: alm-01
        text: Are solutions used for deployments?
        kind: scale
        weight: 2
`

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	t.Run("merges packs in file order", func(t *testing.T) {
		dir := t.TempDir()
		writePack(t, dir, "10-security.yaml", packA)
		writePack(t, dir, "20-alm.yml", packB)
		writePack(t, dir, "notes.txt", "ignored")

		pillars, err := LoadDir(dir)
		require.NoError(t, err)
		require.Len(t, pillars, 2)

		assert.Equal(t, "security", pillars[0].ID)
		assert.Equal(t, "alm", pillars[1].ID)

		q := pillars[0].Questions[0]
		assert.Equal(t, "sec-01", q.ID)
		assert.Equal(t, "security", q.PillarID)
		assert.Equal(t, domain.QuestionKindBoolean, q.Kind)
		assert.InDelta(t, 3.0, q.Weight, 1e-9)
		assert.NotEmpty(t, q.Recommendation)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.ErrorContains(t, err, "no catalog packs")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writePack(t, dir, "bad.yaml", "pillars: [unclosed")

		_, err := LoadDir(dir)
		assert.ErrorContains(t, err, "parse yaml")
	})

	t.Run("merged catalog is validated", func(t *testing.T) {
		dir := t.TempDir()
		writePack(t, dir, "a.yaml", packA)
		writePack(t, dir, "b.yaml", packA)

		_, err := LoadDir(dir)
		assert.ErrorContains(t, err, "duplicate pillar id")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
		assert.ErrorContains(t, err, "read catalog dir")
	})
}
