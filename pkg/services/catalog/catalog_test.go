package catalog

import (
	"testing"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	pillars := Default()

	require.NoError(t, Validate(pillars))
	assert.Len(t, pillars, 5)

	ids := make([]string, 0, len(pillars))
	for _, p := range pillars {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"environments", "dlp", "security", "alm", "monitoring"}, ids)
}

func TestValidate(t *testing.T) {
	valid := func() []domain.Pillar {
		return []domain.Pillar{
			{
				ID: "security", Name: "Security", Target: 85,
				Questions: []domain.Question{
					{ID: "q1", PillarID: "security", Kind: domain.QuestionKindBoolean, Weight: 2},
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func([]domain.Pillar) []domain.Pillar
		wantErr string
	}{
		{
			name:   "valid catalog",
			mutate: func(p []domain.Pillar) []domain.Pillar { return p },
		},
		{
			name:    "empty catalog",
			mutate:  func([]domain.Pillar) []domain.Pillar { return nil },
			wantErr: "no pillars",
		},
		{
			name: "duplicate pillar id",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				return append(p, p[0])
			},
			wantErr: "duplicate pillar id",
		},
		{
			name: "duplicate question id across pillars",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				return append(p, domain.Pillar{
					ID: "alm", Name: "ALM", Target: 75,
					Questions: []domain.Question{
						{ID: "q1", PillarID: "alm", Kind: domain.QuestionKindScale, Weight: 1},
					},
				})
			},
			wantErr: "duplicate question id",
		},
		{
			name: "target out of range",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				p[0].Target = 130
				return p
			},
			wantErr: "out of range",
		},
		{
			name: "pillar without questions",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				p[0].Questions = nil
				return p
			},
			wantErr: "has no questions",
		},
		{
			name: "mismatched pillar id on question",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				p[0].Questions[0].PillarID = "dlp"
				return p
			},
			wantErr: "belongs to pillar",
		},
		{
			name: "non-positive weight",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				p[0].Questions[0].Weight = 0
				return p
			},
			wantErr: "non-positive weight",
		},
		{
			name: "unknown question kind",
			mutate: func(p []domain.Pillar) []domain.Pillar {
				p[0].Questions[0].Kind = "emoji"
				return p
			},
			wantErr: "unknown kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(valid()))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
