package analytics

import (
	"fmt"
	"sort"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

type partition struct {
	count        int
	sales        float64
	quantity     float64
	profit       float64
	shippingDays float64
	late         int
}

// Summarize groups the filtered records by dimension and computes the
// per-partition aggregates. Rows come back ordered by partition size
// descending, key ascending on ties, so equal inputs always produce
// identical tables. A limit > 0 keeps only the first limit rows.
func Summarize(
	records []domain.CleanRecord,
	dim domain.Dimension,
	filter domain.Filter,
	limit int,
) (*domain.SummaryTable, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("unknown dimension: %s", dim)
	}

	parts := map[string]*partition{}
	matched := 0
	for _, r := range records {
		if !filter.Match(r) {
			continue
		}
		matched++

		key := r.Value(dim)
		p := parts[key]
		if p == nil {
			p = &partition{}
			parts[key] = p
		}
		p.count++
		p.sales += r.Sales
		p.quantity += r.Quantity
		p.profit += r.Profit
		p.shippingDays += r.ShippingDays
		if r.Late {
			p.late++
		}
	}
	if matched == 0 {
		return nil, domain.ErrEmptyInput
	}

	rows := make([]domain.SummaryRow, 0, len(parts))
	for key, p := range parts {
		n := float64(p.count)
		rows = append(rows, domain.SummaryRow{
			Key:              key,
			Count:            p.count,
			SalesSum:         p.sales,
			SalesMean:        p.sales / n,
			QuantitySum:      p.quantity,
			ProfitSum:        p.profit,
			ProfitMean:       p.profit / n,
			ShippingDaysMean: p.shippingDays / n,
			LateRate:         float64(p.late) / n,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return &domain.SummaryTable{Dimension: dim, Rows: rows}, nil
}
