package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/services/schema"
)

const (
	// distinct counts stop growing past this many unique values; high
	// cardinality columns only need "a lot" to be classified.
	distinctCap = 10000
	topN        = 8
)

// ProfileColumns infers a kind and basic stats for every raw column in
// one pass. A column is numeric or date only when every non-empty cell
// parses as one, mirroring how a dataframe would type it.
func ProfileColumns(table *domain.RawTable, dateLayouts []string) []domain.ColumnProfile {
	profiles := make([]domain.ColumnProfile, len(table.Header))
	for i, name := range table.Header {
		profiles[i] = profileColumn(table, i, name, dateLayouts)
	}
	return profiles
}

func profileColumn(table *domain.RawTable, idx int, name string, layouts []string) domain.ColumnProfile {
	p := domain.ColumnProfile{Name: name}

	var (
		numeric    int
		dates      int
		mean, m2   float64
		minV, maxV float64
		counts     = map[string]int{}
	)

	for _, row := range table.Rows {
		raw := ""
		if idx < len(row) {
			raw = strings.TrimSpace(row[idx])
		}
		if raw == "" {
			p.Missing++
			continue
		}
		p.NonNull++

		if _, seen := counts[raw]; seen || len(counts) < distinctCap {
			counts[raw]++
		}

		if v, ok := schema.ParseAmount(raw); ok {
			numeric++
			if numeric == 1 {
				minV, maxV = v, v
			} else {
				minV = math.Min(minV, v)
				maxV = math.Max(maxV, v)
			}
			// Welford running mean and variance
			delta := v - mean
			mean += delta / float64(numeric)
			m2 += delta * (v - mean)
			continue
		}
		if _, ok := schema.ParseDate(raw, layouts); ok {
			dates++
		}
	}

	p.Distinct = len(counts)

	switch {
	case p.NonNull == 0:
		p.Kind = domain.ColumnKindText
	case numeric == p.NonNull:
		p.Kind = domain.ColumnKindNumeric
		p.Min, p.Max, p.Mean = minV, maxV, mean
		if numeric > 1 {
			p.Std = math.Sqrt(m2 / float64(numeric-1))
		}
	case dates == p.NonNull:
		p.Kind = domain.ColumnKindDate
	case p.Distinct <= 50 || float64(p.Distinct) <= 0.05*float64(p.NonNull):
		p.Kind = domain.ColumnKindCategorical
		p.Top = topCounts(counts)
	default:
		p.Kind = domain.ColumnKindText
	}

	return p
}

func topCounts(counts map[string]int) []domain.ValueCount {
	out := make([]domain.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, domain.ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
