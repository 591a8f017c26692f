package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/govern-atlas/pkg/models/store"
)

// FilePrefix marks state files owned by this tool; the corruption scrub
// only ever touches files under this prefix.
const FilePrefix = "govern-atlas-"

var (
	ErrNotFound = errors.New("project state not found")
	ErrCorrupt  = errors.New("project state is corrupt")
)

// Store is the persistence port for the project aggregate.
type Store interface {
	Load(ctx context.Context) (*store.ProjectState, error)
	Save(ctx context.Context, state *store.ProjectState) error
	Clear(ctx context.Context) error
}

type fileStore struct {
	dir     string
	project string
}

// NewFileStore persists project state as a versioned JSON file under dir.
func NewFileStore(dir, project string) (Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("state directory is required")
	}
	if project == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure state dir: %w", err)
	}
	return &fileStore{dir: dir, project: project}, nil
}

func (f *fileStore) path() string {
	return filepath.Join(f.dir, FilePrefix+f.project+".json")
}

func (f *fileStore) Load(_ context.Context) (*store.ProjectState, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read project state: %w", err)
	}

	if !looksLikeJSON(data) {
		// Scrub the corrupt file so the next load starts clean. This is
		// a heuristic: well-formed JSON with wrong content passes.
		_ = os.Remove(f.path())
		return nil, ErrCorrupt
	}

	var state store.ProjectState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if state.Version != store.StateVersion {
		return nil, fmt.Errorf("unsupported state version %d", state.Version)
	}
	return &state, nil
}

func (f *fileStore) Save(_ context.Context, state *store.ProjectState) error {
	if state == nil {
		return fmt.Errorf("state is nil")
	}
	state.Version = store.StateVersion
	state.LastSaved = time.Now().UTC()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project state: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(f.dir, filepath.Base(f.path())+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmpName, f.path()); err != nil {
		return fmt.Errorf("rename state file: %w", err)
	}
	return nil
}

func (f *fileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// ScrubCorrupt removes files under the tool's prefix whose content does
// not look like JSON. Returns the names of removed files.
func ScrubCorrupt(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read state dir: %w", err)
	}

	var removed []string
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasPrefix(ent.Name(), FilePrefix) {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if looksLikeJSON(data) {
			continue
		}
		if err := os.Remove(path); err == nil {
			removed = append(removed, ent.Name())
		}
	}
	return removed, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
