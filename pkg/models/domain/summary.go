package domain

import "time"

// SummaryRow holds the aggregates for one partition of a dimension.
type SummaryRow struct {
	Key              string
	Count            int
	SalesSum         float64
	SalesMean        float64
	QuantitySum      float64
	ProfitSum        float64
	ProfitMean       float64
	ShippingDaysMean float64
	LateRate         float64
}

// SummaryTable is a per-dimension aggregation. Rows are ordered by
// partition size descending, ties broken by key ascending.
type SummaryTable struct {
	Dimension Dimension
	Rows      []SummaryRow
}

// CorrelationMatrix holds pairwise Pearson coefficients for the given
// measure columns. Values[i][j] is NaN when either column has zero
// variance or the selection is empty.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// KPISnapshot carries the headline figures for the current selection.
// Orders counts distinct order ids when the dataset has them and falls
// back to the record count when it does not.
type KPISnapshot struct {
	Records       int
	Orders        int
	Products      int
	Customers     int
	SalesTotal    float64
	ProfitTotal   float64
	QuantityTotal float64
	AvgOrderValue float64
	LateRate      float64
	From          time.Time
	To            time.Time
}
