package adapters

import (
	"math"

	"github.com/de-tools/chain-atlas/pkg/models/api"
	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

func MapSummaryDomainToApi(t *domain.SummaryTable) api.Summary {
	out := api.Summary{
		Dimension: string(t.Dimension),
		Rows:      []api.SummaryRow{},
	}

	for _, r := range t.Rows {
		out.Rows = append(out.Rows, api.SummaryRow{
			Key:              r.Key,
			Count:            r.Count,
			SalesSum:         r.SalesSum,
			SalesMean:        r.SalesMean,
			QuantitySum:      r.QuantitySum,
			ProfitSum:        r.ProfitSum,
			ProfitMean:       r.ProfitMean,
			ShippingDaysMean: r.ShippingDaysMean,
			LateRate:         r.LateRate,
		})
	}

	return out
}

func MapCorrelationDomainToApi(m *domain.CorrelationMatrix) api.Correlation {
	out := api.Correlation{
		Columns: append([]string{}, m.Columns...),
		Values:  make([][]*float64, len(m.Values)),
	}

	for i, row := range m.Values {
		out.Values[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			c := v
			out.Values[i][j] = &c
		}
	}

	return out
}

func MapKPISnapshotDomainToApi(k *domain.KPISnapshot) api.KPISnapshot {
	return api.KPISnapshot{
		Records:       k.Records,
		Orders:        k.Orders,
		Products:      k.Products,
		Customers:     k.Customers,
		SalesTotal:    k.SalesTotal,
		ProfitTotal:   k.ProfitTotal,
		QuantityTotal: k.QuantityTotal,
		AvgOrderValue: k.AvgOrderValue,
		LateRate:      k.LateRate,
		From:          k.From,
		To:            k.To,
	}
}

func MapColumnProfileDomainToApi(p domain.ColumnProfile) api.ColumnProfile {
	out := api.ColumnProfile{
		Name:     p.Name,
		Kind:     string(p.Kind),
		NonNull:  p.NonNull,
		Missing:  p.Missing,
		Distinct: p.Distinct,
		Min:      p.Min,
		Max:      p.Max,
		Mean:     p.Mean,
		Std:      p.Std,
	}

	for _, v := range p.Top {
		out.Top = append(out.Top, api.ValueCount{Value: v.Value, Count: v.Count})
	}

	return out
}

func MapQualityReportDomainToApi(q *domain.QualityReport) api.QualityReport {
	out := api.QualityReport{
		RawRows:     q.RawRows,
		CleanRows:   q.CleanRows,
		DroppedRows: q.DroppedRows,
		Resolved:    q.Resolved,
	}

	if len(q.Dropped) > 0 {
		out.Dropped = make(map[string]int, len(q.Dropped))
		for reason, n := range q.Dropped {
			out.Dropped[string(reason)] = n
		}
	}

	for _, m := range q.Missing {
		out.Missing = append(out.Missing, api.ColumnMissing{Column: m.Column, Missing: m.Missing})
	}

	return out
}

func MapSourceProfileDomainToApi(p domain.SourceProfile) api.SourceProfile {
	return api.SourceProfile{
		Name:     p.Name,
		Kind:     string(p.Kind),
		Location: p.Location,
		Schema:   p.Schema,
	}
}
