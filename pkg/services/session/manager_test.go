package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context, src domain.Source) (*domain.RawTable, error) {
	args := m.Called(ctx, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawTable), args.Error(1)
}

func sampleTable() *domain.RawTable {
	return &domain.RawTable{
		Name: "orders.csv",
		Header: []string{
			"order date (DateOrders)", "Product Card Id", "Customer Id",
			"Order Region", "Shipping Mode", "Sales", "Order Item Quantity", "Late_delivery_risk",
		},
		Rows: [][]string{
			{"1/10/2018", "p1", "c1", "Europe", "Standard Class", "10", "1", "0"},
			{"1/20/2018", "p2", "c1", "Europe", "First Class", "20", "1", "1"},
			{"2/5/2018", "p1", "c2", "Asia", "Standard Class", "30", "2", "0"},
		},
	}
}

func TestManager_OpenRegistersSession(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(sampleTable(), nil)

	m := NewManager(loader, nil)
	sess, err := m.Open(context.Background(), src)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "orders.csv", sess.Source)
	assert.Equal(t, "dataco", sess.Profile)
	assert.Equal(t, 3, sess.Quality().CleanRows)
	assert.Equal(t, 8, len(sess.Columns()))
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(sess.ID)
	assert.True(t, ok)
	assert.Same(t, sess, got)

	loader.AssertExpectations(t)
}

func TestManager_OpenPropagatesLoadErrors(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "nope.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(nil, domain.ErrSourceNotFound)

	m := NewManager(loader, nil)
	_, err := m.Open(context.Background(), src)

	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Equal(t, 0, m.Count())
}

func TestManager_OpenPropagatesSchemaMismatch(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(&domain.RawTable{
		Name:   "orders.csv",
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "2"}},
	}, nil)

	m := NewManager(loader, nil)
	_, err := m.Open(context.Background(), src)

	var mismatch *domain.SchemaMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestManager_CloseRemovesSession(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(sampleTable(), nil)

	m := NewManager(loader, nil)
	sess, err := m.Open(context.Background(), src)
	require.NoError(t, err)

	assert.True(t, m.Close(sess.ID))
	assert.False(t, m.Close(sess.ID))
	assert.Equal(t, 0, m.Count())

	_, ok := m.Get(sess.ID)
	assert.False(t, ok)
}

func TestSession_FilterNarrowsRecords(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(sampleTable(), nil)

	m := NewManager(loader, nil)
	sess, err := m.Open(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 3, len(sess.Records()))

	from := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	sess.SetFilter(domain.Filter{From: &from})
	assert.Equal(t, 1, len(sess.Records()))

	snap, err := sess.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Records)

	sess.SetFilter(domain.Filter{})
	assert.Equal(t, 3, len(sess.Records()))
}

func TestSession_SummariesFollowTheFilter(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(sampleTable(), nil)

	m := NewManager(loader, nil)
	sess, err := m.Open(context.Background(), src)
	require.NoError(t, err)

	table, err := sess.Summarize(domain.DimensionRegion, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, len(table.Rows))
	assert.Equal(t, "europe", table.Rows[0].Key)

	// same arguments come from the cache and stay equal
	again, err := sess.Summarize(domain.DimensionRegion, 0)
	require.NoError(t, err)
	assert.Same(t, table, again)

	sess.SetFilter(domain.Filter{Regions: []string{"asia"}})
	filtered, err := sess.Summarize(domain.DimensionRegion, 0)
	require.NoError(t, err)
	require.Equal(t, 1, len(filtered.Rows))
	assert.Equal(t, "asia", filtered.Rows[0].Key)
}

func TestSession_SummarizeEmptySelection(t *testing.T) {
	src := domain.Source{Kind: domain.SourceKindLocal, Location: "orders.csv"}

	loader := new(mockLoader)
	loader.On("Load", mock.Anything, src).Return(sampleTable(), nil)

	m := NewManager(loader, nil)
	sess, err := m.Open(context.Background(), src)
	require.NoError(t, err)

	sess.SetFilter(domain.Filter{Regions: []string{"atlantis"}})
	_, err = sess.Summarize(domain.DimensionRegion, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
