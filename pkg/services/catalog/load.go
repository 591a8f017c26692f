package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

type rawQuestion struct {
	ID             string  `yaml:"id"`
	Text           string  `yaml:"text"`
	Kind           string  `yaml:"kind"`
	Weight         float64 `yaml:"weight"`
	Recommendation string  `yaml:"recommendation,omitempty"`
	Guidance       string  `yaml:"guidance,omitempty"`
}

type rawPillar struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Target    float64       `yaml:"target"`
	Questions []rawQuestion `yaml:"questions"`
}

type rawCatalog struct {
	Pillars []rawPillar `yaml:"pillars"`
}

// LoadDir reads every *.yaml/*.yml catalog pack in dir, merges the
// pillars in file order, and validates the result.
func LoadDir(dir string) ([]domain.Pillar, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog packs found in %s", dir)
	}
	sort.Strings(files)

	var pillars []domain.Pillar
	for _, path := range files {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		pillars = append(pillars, loaded...)
	}

	if err := Validate(pillars); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return pillars, nil
}

func loadFile(path string) ([]domain.Pillar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	pillars := make([]domain.Pillar, 0, len(raw.Pillars))
	for _, rp := range raw.Pillars {
		p := domain.Pillar{
			ID:     rp.ID,
			Name:   rp.Name,
			Target: rp.Target,
		}
		for _, rq := range rp.Questions {
			p.Questions = append(p.Questions, domain.Question{
				ID:             rq.ID,
				PillarID:       rp.ID,
				Text:           rq.Text,
				Kind:           domain.QuestionKind(rq.Kind),
				Weight:         rq.Weight,
				Recommendation: rq.Recommendation,
				Guidance:       rq.Guidance,
			})
		}
		pillars = append(pillars, p)
	}
	return pillars, nil
}
