package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kpiRecord(order, product, customer string, sales float64, late bool, date time.Time) domain.CleanRecord {
	return domain.CleanRecord{
		OrderID:    order,
		OrderDate:  date,
		ProductID:  product,
		CustomerID: customer,
		Sales:      sales,
		Quantity:   1,
		Profit:     sales / 10,
		Late:       late,
	}
}

func TestSnapshot_ComputesHeadlineFigures(t *testing.T) {
	records := []domain.CleanRecord{
		kpiRecord("o1", "p1", "c1", 10, true, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)),
		kpiRecord("o1", "p2", "c1", 20, false, time.Date(2018, 1, 20, 0, 0, 0, 0, time.UTC)),
		kpiRecord("o2", "p1", "c2", 30, false, time.Date(2018, 2, 5, 0, 0, 0, 0, time.UTC)),
	}

	snap, err := Snapshot(records, domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Records)
	assert.Equal(t, 2, snap.Orders)
	assert.Equal(t, 2, snap.Products)
	assert.Equal(t, 2, snap.Customers)
	assert.InDelta(t, 60, snap.SalesTotal, 1e-9)
	assert.InDelta(t, 6, snap.ProfitTotal, 1e-9)
	assert.InDelta(t, 3, snap.QuantityTotal, 1e-9)
	// 60 in sales across 2 distinct orders
	assert.InDelta(t, 30, snap.AvgOrderValue, 1e-9)
	assert.InDelta(t, 1.0/3.0, snap.LateRate, 1e-9)
	assert.Equal(t, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC), snap.From)
	assert.Equal(t, time.Date(2018, 2, 5, 0, 0, 0, 0, time.UTC), snap.To)
}

func TestSnapshot_NoOrderIDs_CountsRecordsAsOrders(t *testing.T) {
	records := []domain.CleanRecord{
		kpiRecord("", "p1", "c1", 10, false, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)),
		kpiRecord("", "p2", "c2", 30, false, time.Date(2018, 1, 11, 0, 0, 0, 0, time.UTC)),
	}

	snap, err := Snapshot(records, domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Orders)
	assert.InDelta(t, 20, snap.AvgOrderValue, 1e-9)
}

func TestSnapshot_AppliesFilter(t *testing.T) {
	from := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.CleanRecord{
		kpiRecord("o1", "p1", "c1", 10, false, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)),
		kpiRecord("o2", "p1", "c2", 30, false, time.Date(2018, 2, 5, 0, 0, 0, 0, time.UTC)),
	}

	snap, err := Snapshot(records, domain.Filter{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Records)
	assert.InDelta(t, 30, snap.SalesTotal, 1e-9)
	assert.Equal(t, time.Date(2018, 2, 5, 0, 0, 0, 0, time.UTC), snap.From)
	assert.Equal(t, snap.From, snap.To)
}

func TestSnapshot_NoRecords_ReturnsEmptyInput(t *testing.T) {
	_, err := Snapshot(nil, domain.Filter{})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = Snapshot([]domain.CleanRecord{
		kpiRecord("o1", "p1", "c1", 10, false, time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC)),
	}, domain.Filter{From: &from})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
