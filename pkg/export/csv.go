package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02 15:04"

var recordHeader = []string{
	"order_id", "order_date", "ship_date",
	"product_id", "product_name", "category",
	"customer_id", "segment", "region", "supplier_region",
	"shipping_mode", "order_status",
	"sales", "quantity", "profit", "shipping_cost", "shipping_days",
	"late",
}

// WriteRecordsCSV writes the clean records with a fixed column order
// and fixed value formatting, so the same records always produce
// byte-identical output.
func WriteRecordsCSV(w io.Writer, records []domain.CleanRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.OrderID,
			r.OrderDate.Format(dateLayout),
			formatShipDate(r.ShipDate),
			r.ProductID,
			r.ProductName,
			r.Category,
			r.CustomerID,
			r.Segment,
			r.Region,
			r.SupplierRegion,
			r.ShippingMode,
			r.OrderStatus,
			formatFloat(r.Sales),
			formatFloat(r.Quantity),
			formatFloat(r.Profit),
			formatFloat(r.ShippingCost),
			formatFloat(r.ShippingDays),
			formatFlag(r.Late),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes a summary table in row order, first column
// named after the dimension.
func WriteSummaryCSV(w io.Writer, table *domain.SummaryTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader(table.Dimension)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range table.Rows {
		row := []string{
			r.Key,
			strconv.Itoa(r.Count),
			formatFloat(r.SalesSum),
			formatFloat(r.SalesMean),
			formatFloat(r.QuantitySum),
			formatFloat(r.ProfitSum),
			formatFloat(r.ProfitMean),
			formatFloat(r.ShippingDaysMean),
			formatFloat(r.LateRate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCorrelationCSV writes the matrix with column names on both
// axes. Undefined coefficients come out as "NaN".
func WriteCorrelationCSV(w io.Writer, m *domain.CorrelationMatrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, name := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, name)
		for j := range m.Columns {
			row = append(row, formatFloat(m.Values[i][j]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func summaryHeader(dim domain.Dimension) []string {
	return []string{
		string(dim), "count",
		"sales_sum", "sales_mean", "quantity_sum",
		"profit_sum", "profit_mean", "shipping_days_mean", "late_rate",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatShipDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
