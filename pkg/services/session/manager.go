package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"
	"github.com/de-tools/chain-atlas/pkg/services/dataset"
	"github.com/de-tools/chain-atlas/pkg/services/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager runs the intake pipeline and tracks open sessions. Sessions
// live in memory only and disappear with the process.
type Manager struct {
	loader  dataset.Loader
	profile *schema.Profile

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(loader dataset.Loader, profile *schema.Profile) *Manager {
	if profile == nil {
		profile = schema.DefaultProfile()
	}
	return &Manager{
		loader:   loader,
		profile:  profile,
		sessions: make(map[string]*Session),
	}
}

// Open loads, validates and profiles a dataset, then registers a
// session over the result. The dataset stays queryable until Close.
func (m *Manager) Open(ctx context.Context, src domain.Source) (*Session, error) {
	return m.OpenWithProfile(ctx, src, nil)
}

// OpenWithProfile is Open with a schema profile overriding the
// manager's default, e.g. from a registry entry or a CLI flag.
func (m *Manager) OpenWithProfile(
	ctx context.Context,
	src domain.Source,
	profile *schema.Profile,
) (*Session, error) {
	logger := zerolog.Ctx(ctx)

	if profile == nil {
		profile = m.profile
	}

	table, err := m.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	records, quality, err := schema.NewNormalizer(profile).Normalize(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to validate dataset: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Source:    table.Name,
		Profile:   profile.Name,
		CreatedAt: time.Now().UTC(),
		records:   records,
		quality:   quality,
		columns:   analytics.ProfileColumns(table, profile.DateLayouts),
		summaries: map[string]*domain.SummaryTable{},
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	logger.Info().
		Str("session_id", sess.ID).
		Str("source", sess.Source).
		Int("records", len(records)).
		Int("dropped", quality.DroppedRows).
		Msg("session opened")

	return sess, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count reports the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
