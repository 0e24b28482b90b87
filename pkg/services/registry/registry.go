package registry

import (
	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

type SourceRegistry interface {
	GetProfiles() ([]domain.SourceProfile, error)
	GetProfile(name string) (domain.SourceProfile, error)
}
