package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"
)

// Session owns one loaded dataset and every piece of exploration
// state: the active filter plus a cache of summary tables keyed by
// dimension, filter fingerprint and row limit. The clean records are
// immutable once the session is open, so cached tables stay valid
// until the filter changes. Methods are safe for concurrent use.
type Session struct {
	ID        string
	Source    string
	Profile   string
	CreatedAt time.Time

	records []domain.CleanRecord
	quality *domain.QualityReport
	columns []domain.ColumnProfile

	mu        sync.Mutex
	filter    domain.Filter
	summaries map[string]*domain.SummaryTable
}

func (s *Session) Quality() *domain.QualityReport {
	return s.quality
}

func (s *Session) Columns() []domain.ColumnProfile {
	return s.columns
}

func (s *Session) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter replaces the active filter and invalidates cached tables.
func (s *Session) SetFilter(f domain.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.summaries = map[string]*domain.SummaryTable{}
}

// Records returns the clean records matching the active filter.
func (s *Session) Records() []domain.CleanRecord {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	if filter.IsZero() {
		return s.records
	}

	out := make([]domain.CleanRecord, 0, len(s.records))
	for _, r := range s.records {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Session) Summarize(dim domain.Dimension, limit int) (*domain.SummaryTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s|%s|%d", dim, s.filter.Fingerprint(), limit)
	if table, ok := s.summaries[key]; ok {
		return table, nil
	}

	table, err := analytics.Summarize(s.records, dim, s.filter, limit)
	if err != nil {
		return nil, err
	}
	s.summaries[key] = table
	return table, nil
}

func (s *Session) Correlate(columns []string) (*domain.CorrelationMatrix, error) {
	return analytics.Correlate(s.records, columns, s.Filter())
}

func (s *Session) Snapshot() (*domain.KPISnapshot, error) {
	return analytics.Snapshot(s.records, s.Filter())
}
