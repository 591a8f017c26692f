package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
)

type Profile struct {
	Organization string             `mapstructure:"organization"`
	Size         string             `mapstructure:"size"`
	User         string             `mapstructure:"user"`
	Targets      map[string]float64 `mapstructure:"targets"`
}

// LoadProfile reads an organization profile file (yaml/toml/json, decided
// by extension) and maps it to the domain profile.
func LoadProfile(profilePath string) (*domain.OrgProfile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Profile
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse org profile: %w", err)
	}
	if cfg.Organization == "" {
		return nil, fmt.Errorf("profile %s is missing the organization name", profilePath)
	}

	size := domain.OrgSize(cfg.Size)
	switch size {
	case domain.OrgSizeSmall, domain.OrgSizeMedium, domain.OrgSizeLarge, domain.OrgSizeEnterprise:
	case "":
		size = domain.OrgSizeMedium
	default:
		return nil, fmt.Errorf("unknown organization size %q", cfg.Size)
	}

	return &domain.OrgProfile{
		Name:    cfg.Organization,
		Size:    size,
		User:    cfg.User,
		Targets: cfg.Targets,
	}, nil
}
