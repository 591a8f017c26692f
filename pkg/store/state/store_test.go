package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() *store.ProjectState {
	return &store.ProjectState{
		Project: store.ProjectSnapshot{
			ID:        "proj-1",
			Name:      "contoso",
			OrgName:   "Contoso",
			OrgSize:   "medium",
			SessionID: "session-1",
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Responses: map[string]store.Response{
				"sec-01": {Kind: "boolean", Bool: true},
				"sec-02": {Kind: "percentage", Percent: 75},
			},
			Adjustments: map[string]float64{"security": 5},
			TaskDeltas:  map[string]float64{"t1": 5},
		},
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir, "contoso")
	require.NoError(t, err)

	original := testState()
	require.NoError(t, s.Save(ctx, original))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, store.StateVersion, loaded.Version)
	assert.False(t, loaded.LastSaved.IsZero())
	assert.Equal(t, original.Project, loaded.Project)
}

func TestFileStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir(), "contoso")
		require.NoError(t, err)

		_, err = s.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-json content is scrubbed", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FilePrefix+"contoso.json")
		require.NoError(t, os.WriteFile(path, []byte("<<<garbage>>>"), 0o644))

		s, err := NewFileStore(dir, "contoso")
		require.NoError(t, err)

		_, err = s.Load(ctx)
		assert.ErrorIs(t, err, ErrCorrupt)

		// The corrupt file is removed so the next load starts clean.
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		_, err = s.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("truncated json is corrupt but kept", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FilePrefix+"contoso.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "project`), 0o644))

		s, err := NewFileStore(dir, "contoso")
		require.NoError(t, err)

		_, err = s.Load(ctx)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unknown version is rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FilePrefix+"contoso.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "project": {}}`), 0o644))

		s, err := NewFileStore(dir, "contoso")
		require.NoError(t, err)

		_, err = s.Load(ctx)
		assert.ErrorContains(t, err, "unsupported state version")
	})
}

func TestFileStore_SaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir, "contoso")
	require.NoError(t, err)

	first := testState()
	require.NoError(t, s.Save(ctx, first))

	second := testState()
	second.Project.UpdatedAt = second.Project.UpdatedAt.Add(time.Hour)
	require.NoError(t, s.Save(ctx, second))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Project.UpdatedAt, loaded.Project.UpdatedAt)

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_Clear(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir, "contoso")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testState()))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScrubCorrupt(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write(FilePrefix+"good.json", `{"version": 1}`)
	write(FilePrefix+"bad.json", "not json at all")
	write("unrelated.json", "also not json")

	removed, err := ScrubCorrupt(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{FilePrefix + "bad.json"}, removed)

	// Files outside the tool's prefix are never touched.
	_, err = os.Stat(filepath.Join(dir, "unrelated.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, FilePrefix+"good.json"))
	assert.NoError(t, err)
}
