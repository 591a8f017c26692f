package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

// Registry exposes the named organization profiles from a shared ini
// file (one section per organization).
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*domain.OrgProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*domain.OrgProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	size := domain.OrgSize(section.Key("size").MustString(string(domain.OrgSizeMedium)))
	profile := &domain.OrgProfile{
		Name:    name,
		Size:    size,
		User:    section.Key("user").String(),
		Targets: map[string]float64{},
	}

	for _, key := range section.Keys() {
		if pillar, ok := strings.CutPrefix(key.Name(), "target_"); ok {
			profile.Targets[pillar] = key.MustFloat64(0)
		}
	}
	return profile, nil
}
