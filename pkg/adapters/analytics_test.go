package adapters

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCorrelationDomainToApi_NaNBecomesNull(t *testing.T) {
	m := &domain.CorrelationMatrix{
		Columns: []string{"sales", "quantity"},
		Values: [][]float64{
			{1, math.NaN()},
			{math.NaN(), math.NaN()},
		},
	}

	out := MapCorrelationDomainToApi(m)

	require.NotNil(t, out.Values[0][0])
	assert.Equal(t, 1.0, *out.Values[0][0])
	assert.Nil(t, out.Values[0][1])
	assert.Nil(t, out.Values[1][1])

	// the whole payload must survive JSON encoding
	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")
}

func TestMapSummaryDomainToApi_EmptyRowsStayPresent(t *testing.T) {
	out := MapSummaryDomainToApi(&domain.SummaryTable{Dimension: domain.DimensionRegion})

	assert.Equal(t, "region", out.Dimension)
	assert.NotNil(t, out.Rows)
	assert.Equal(t, 0, len(out.Rows))
}

func TestMapQualityReportDomainToApi(t *testing.T) {
	q := &domain.QualityReport{
		RawRows:     5,
		CleanRows:   4,
		DroppedRows: 1,
		Dropped:     map[domain.DropReason]int{domain.DropReasonBadNumber: 1},
		Missing:     []domain.ColumnMissing{{Column: "Sales", Missing: 1}},
		Resolved:    map[string]string{"sales": "Sales"},
	}

	out := MapQualityReportDomainToApi(q)

	assert.Equal(t, 5, out.RawRows)
	assert.Equal(t, 1, out.Dropped["bad_number"])
	require.Equal(t, 1, len(out.Missing))
	assert.Equal(t, "Sales", out.Missing[0].Column)
	assert.Equal(t, "Sales", out.Resolved["sales"])
}
