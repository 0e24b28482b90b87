package api

import "time"

type SummaryRow struct {
	Key              string  `json:"key"`
	Count            int     `json:"count"`
	SalesSum         float64 `json:"sales_sum"`
	SalesMean        float64 `json:"sales_mean"`
	QuantitySum      float64 `json:"quantity_sum"`
	ProfitSum        float64 `json:"profit_sum"`
	ProfitMean       float64 `json:"profit_mean"`
	ShippingDaysMean float64 `json:"shipping_days_mean"`
	LateRate         float64 `json:"late_rate"`
}

type Summary struct {
	Dimension string       `json:"dimension"`
	Rows      []SummaryRow `json:"rows"`
	Empty     bool         `json:"empty,omitempty"`
}

// Correlation carries Pearson coefficients. Undefined cells (zero
// variance or empty selection) are encoded as null since JSON has no
// NaN literal.
type Correlation struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
	Empty   bool         `json:"empty,omitempty"`
}

type KPISnapshot struct {
	Empty         bool      `json:"empty,omitempty"`
	Records       int       `json:"records"`
	Orders        int       `json:"orders"`
	Products      int       `json:"products"`
	Customers     int       `json:"customers"`
	SalesTotal    float64   `json:"sales_total"`
	ProfitTotal   float64   `json:"profit_total"`
	QuantityTotal float64   `json:"quantity_total"`
	AvgOrderValue float64   `json:"avg_order_value"`
	LateRate      float64   `json:"late_rate"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type ColumnProfile struct {
	Name     string       `json:"name"`
	Kind     string       `json:"kind"`
	NonNull  int          `json:"non_null"`
	Missing  int          `json:"missing"`
	Distinct int          `json:"distinct"`
	Min      float64      `json:"min,omitempty"`
	Max      float64      `json:"max,omitempty"`
	Mean     float64      `json:"mean,omitempty"`
	Std      float64      `json:"std,omitempty"`
	Top      []ValueCount `json:"top,omitempty"`
}

type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

type QualityReport struct {
	RawRows     int               `json:"raw_rows"`
	CleanRows   int               `json:"clean_rows"`
	DroppedRows int               `json:"dropped_rows"`
	Dropped     map[string]int    `json:"dropped,omitempty"`
	Missing     []ColumnMissing   `json:"missing,omitempty"`
	Resolved    map[string]string `json:"resolved,omitempty"`
}
