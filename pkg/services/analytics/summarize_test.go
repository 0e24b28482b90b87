package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(region string, sales float64) domain.CleanRecord {
	return domain.CleanRecord{
		OrderDate:    time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC),
		Region:       region,
		ShippingMode: "standard class",
		Sales:        sales,
		Quantity:     1,
		Profit:       sales / 10,
		ShippingDays: 4,
	}
}

func TestSummarize_GroupsAndOrdersPartitions(t *testing.T) {
	records := []domain.CleanRecord{
		record("europe", 10),
		record("asia", 5),
		record("europe", 20),
	}

	table, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)

	require.Equal(t, 2, len(table.Rows))
	assert.Equal(t, domain.DimensionRegion, table.Dimension)

	// europe has more records, so it comes first
	assert.Equal(t, "europe", table.Rows[0].Key)
	assert.Equal(t, 2, table.Rows[0].Count)
	assert.InDelta(t, 30, table.Rows[0].SalesSum, 1e-9)
	assert.InDelta(t, 15, table.Rows[0].SalesMean, 1e-9)
	assert.InDelta(t, 2, table.Rows[0].QuantitySum, 1e-9)
	assert.InDelta(t, 3, table.Rows[0].ProfitSum, 1e-9)
	assert.InDelta(t, 4, table.Rows[0].ShippingDaysMean, 1e-9)

	assert.Equal(t, "asia", table.Rows[1].Key)
	assert.Equal(t, 1, table.Rows[1].Count)
	assert.InDelta(t, 5, table.Rows[1].SalesSum, 1e-9)
	assert.InDelta(t, 5, table.Rows[1].SalesMean, 1e-9)
}

func TestSummarize_TiesOrderedByKey(t *testing.T) {
	records := []domain.CleanRecord{
		record("pacific", 1),
		record("caribbean", 1),
		record("oceania", 1),
	}

	table, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)

	keys := []string{table.Rows[0].Key, table.Rows[1].Key, table.Rows[2].Key}
	assert.Equal(t, []string{"caribbean", "oceania", "pacific"}, keys)
}

func TestSummarize_EmptyValuesFallToUnknown(t *testing.T) {
	records := []domain.CleanRecord{
		record("europe", 10),
		record("", 7),
	}

	table, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)

	total := 0
	keys := map[string]bool{}
	for _, row := range table.Rows {
		total += row.Count
		keys[row.Key] = true
	}
	assert.Equal(t, len(records), total)
	assert.True(t, keys["unknown"])
}

func TestSummarize_LateRate(t *testing.T) {
	late := record("europe", 10)
	late.Late = true
	records := []domain.CleanRecord{late, record("europe", 20)}

	table, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)

	require.Equal(t, 1, len(table.Rows))
	assert.InDelta(t, 0.5, table.Rows[0].LateRate, 1e-9)
}

func TestSummarize_AppliesFilterAndLimit(t *testing.T) {
	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)

	early := record("europe", 10)
	early.OrderDate = time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)

	records := []domain.CleanRecord{
		early,
		record("europe", 20),
		record("asia", 5),
		record("asia", 6),
		record("africa", 1),
	}

	table, err := Summarize(records, domain.DimensionRegion, domain.Filter{From: &from, To: &to}, 2)
	require.NoError(t, err)

	require.Equal(t, 2, len(table.Rows))
	assert.Equal(t, "asia", table.Rows[0].Key)
	assert.Equal(t, 2, table.Rows[0].Count)
	// europe's 2017 record is outside the window
	assert.Equal(t, "europe", table.Rows[1].Key)
	assert.Equal(t, 1, table.Rows[1].Count)
}

func TestSummarize_NoMatches_ReturnsEmptyInput(t *testing.T) {
	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Summarize([]domain.CleanRecord{record("europe", 10)}, domain.DimensionRegion, domain.Filter{From: &from}, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = Summarize(nil, domain.DimensionRegion, domain.Filter{}, 0)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestSummarize_UnknownDimension_ReturnsError(t *testing.T) {
	_, err := Summarize([]domain.CleanRecord{record("europe", 10)}, "warehouse", domain.Filter{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dimension")
}

func TestSummarize_Deterministic(t *testing.T) {
	records := []domain.CleanRecord{
		record("europe", 10),
		record("asia", 5),
		record("europe", 20),
		record("africa", 7),
	}

	first, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)
	second, err := Summarize(records, domain.DimensionRegion, domain.Filter{}, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
