package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_MatchDateWindow(t *testing.T) {
	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{From: &from, To: &to}

	assert.True(t, f.Match(CleanRecord{OrderDate: from}), "from is inclusive")
	assert.True(t, f.Match(CleanRecord{OrderDate: time.Date(2018, 1, 31, 23, 59, 0, 0, time.UTC)}))
	assert.False(t, f.Match(CleanRecord{OrderDate: to}), "to is exclusive")
	assert.False(t, f.Match(CleanRecord{OrderDate: from.Add(-time.Second)}))
}

func TestFilter_MatchNormalizesValues(t *testing.T) {
	f := Filter{Regions: []string{" Europe "}, Modes: []string{"Standard Class"}}

	rec := CleanRecord{Region: "europe", ShippingMode: "standard class"}
	assert.True(t, f.Match(rec))

	rec.Region = "asia"
	assert.False(t, f.Match(rec))
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())

	from := time.Now()
	assert.False(t, Filter{From: &from}.IsZero())
	assert.False(t, Filter{Regions: []string{"europe"}}.IsZero())
}

func TestFilter_FingerprintIgnoresValueOrder(t *testing.T) {
	a := Filter{Regions: []string{"Europe", "asia"}, Modes: []string{"first class"}}
	b := Filter{Regions: []string{"ASIA", "europe"}, Modes: []string{"First Class"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), Filter{}.Fingerprint())
}

func TestKindForLocation(t *testing.T) {
	assert.Equal(t, SourceKindS3, KindForLocation("s3://lake/orders.csv"))
	assert.Equal(t, SourceKindRemote, KindForLocation("https://example.com/orders.csv"))
	assert.Equal(t, SourceKindRemote, KindForLocation("http://example.com/orders.csv"))
	assert.Equal(t, SourceKindLocal, KindForLocation("/data/orders.csv"))
}

func TestCleanRecord_ValueFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, "unknown", CleanRecord{}.Value(DimensionRegion))
	assert.Equal(t, "europe", CleanRecord{Region: "europe"}.Value(DimensionRegion))

	// product prefers the name and falls back to the id
	assert.Equal(t, "smart watch", CleanRecord{ProductName: "smart watch", ProductID: "p1"}.Value(DimensionProduct))
	assert.Equal(t, "p1", CleanRecord{ProductID: "p1"}.Value(DimensionProduct))
}
