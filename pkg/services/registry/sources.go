package registry

import (
	"fmt"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

type iniRegistry struct {
	cfg *ini.File
}

// NewSourceRegistry reads named dataset profiles from an INI file.
// Each section describes one source: its kind, location and an
// optional schema profile path. A missing kind is inferred from the
// location prefix.
func NewSourceRegistry(path string) (SourceRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles() ([]domain.SourceProfile, error) {
	var profiles []domain.SourceProfile
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, profileFromSection(section))
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(name string) (domain.SourceProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return domain.SourceProfile{}, fmt.Errorf("profile %s not found", name)
	}
	return profileFromSection(section), nil
}

func profileFromSection(section *ini.Section) domain.SourceProfile {
	p := domain.SourceProfile{
		Name:     section.Name(),
		Kind:     domain.SourceKind(section.Key("kind").String()),
		Location: section.Key("location").String(),
		Schema:   section.Key("schema").String(),
	}
	if p.Kind == "" {
		p.Kind = domain.KindForLocation(p.Location)
	}
	return p
}
