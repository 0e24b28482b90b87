package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Reporter renders analytics results as terminal tables.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Summary(table *domain.SummaryTable, quality *domain.QualityReport) error {
	if quality != nil && quality.DroppedRows > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintf(c.writer, "dropped %d of %d rows during validation\n\n",
			quality.DroppedRows, quality.RawRows)
	}

	t := tablewriter.NewWriter(c.writer)
	t.SetHeader([]string{
		string(table.Dimension), "Count",
		"Sales", "Avg Sales", "Qty",
		"Profit", "Avg Profit", "Avg Ship Days", "Late %",
	})
	t.SetAutoWrapText(false)

	for _, r := range table.Rows {
		t.Append([]string{
			r.Key,
			strconv.Itoa(r.Count),
			money(r.SalesSum),
			money(r.SalesMean),
			fmt.Sprintf("%.0f", r.QuantitySum),
			money(r.ProfitSum),
			money(r.ProfitMean),
			fmt.Sprintf("%.1f", r.ShippingDaysMean),
			percent(r.LateRate),
		})
	}

	t.Render()
	return nil
}

func (c *Reporter) Correlation(m *domain.CorrelationMatrix) error {
	t := tablewriter.NewWriter(c.writer)
	t.SetHeader(append([]string{""}, m.Columns...))

	for i, name := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, name)
		for j := range m.Columns {
			row = append(row, coefficient(m.Values[i][j]))
		}
		t.Append(row)
	}

	t.Render()
	return nil
}

func (c *Reporter) KPIs(snap *domain.KPISnapshot) error {
	t := tablewriter.NewWriter(c.writer)
	t.SetHeader([]string{"Metric", "Value"})

	rows := [][]string{
		{"Records", strconv.Itoa(snap.Records)},
		{"Orders", strconv.Itoa(snap.Orders)},
		{"Products", strconv.Itoa(snap.Products)},
		{"Customers", strconv.Itoa(snap.Customers)},
		{"Total Sales", money(snap.SalesTotal)},
		{"Total Profit", money(snap.ProfitTotal)},
		{"Units Moved", fmt.Sprintf("%.0f", snap.QuantityTotal)},
		{"Avg Order Value", money(snap.AvgOrderValue)},
		{"Late Rate", percent(snap.LateRate)},
		{"Period", fmt.Sprintf("%s to %s",
			snap.From.Format("2006-01-02"), snap.To.Format("2006-01-02"))},
	}
	for _, row := range rows {
		t.Append(row)
	}

	t.Render()
	return nil
}

func (c *Reporter) Columns(cols []domain.ColumnProfile) error {
	t := tablewriter.NewWriter(c.writer)
	t.SetHeader([]string{"Column", "Kind", "Non-null", "Missing", "Distinct", "Min", "Max", "Mean", "Std"})
	t.SetAutoWrapText(false)

	for _, col := range cols {
		row := []string{
			col.Name,
			string(col.Kind),
			strconv.Itoa(col.NonNull),
			strconv.Itoa(col.Missing),
			strconv.Itoa(col.Distinct),
			"", "", "", "",
		}
		if col.Kind == domain.ColumnKindNumeric {
			row[5] = fmt.Sprintf("%.2f", col.Min)
			row[6] = fmt.Sprintf("%.2f", col.Max)
			row[7] = fmt.Sprintf("%.2f", col.Mean)
			row[8] = fmt.Sprintf("%.2f", col.Std)
		}
		t.Append(row)
	}

	t.Render()
	return nil
}

func (c *Reporter) Quality(q *domain.QualityReport) error {
	bold := color.New(color.Bold)
	bold.Fprintf(c.writer, "rows: %d raw, %d clean, %d dropped\n", q.RawRows, q.CleanRows, q.DroppedRows)

	if len(q.Dropped) > 0 {
		reasons := maps.Keys(q.Dropped)
		slices.Sort(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(c.writer, "  %s: %d\n", reason, q.Dropped[reason])
		}
	}

	if len(q.Missing) > 0 {
		fmt.Fprintln(c.writer)
		t := tablewriter.NewWriter(c.writer)
		t.SetHeader([]string{"Column", "Missing"})
		for _, m := range q.Missing {
			t.Append([]string{m.Column, strconv.Itoa(m.Missing)})
		}
		t.Render()
	}

	return nil
}

func (c *Reporter) Sources(profiles []domain.SourceProfile) error {
	t := tablewriter.NewWriter(c.writer)
	t.SetHeader([]string{"Name", "Kind", "Location", "Schema"})
	t.SetAutoWrapText(false)

	for _, p := range profiles {
		t.Append([]string{p.Name, string(p.Kind), p.Location, p.Schema})
	}

	t.Render()
	return nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func coefficient(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
