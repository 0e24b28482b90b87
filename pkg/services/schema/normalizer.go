package schema

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Normalizer interface {
	// Normalize validates a raw table against the profile and returns
	// the surviving records plus a quality report accounting for every
	// raw row. A header that does not cover the required fields fails
	// with a SchemaMismatchError before any row is read.
	Normalize(ctx context.Context, table *domain.RawTable) ([]domain.CleanRecord, *domain.QualityReport, error)
}

type normalizer struct {
	profile *Profile
}

func NewNormalizer(profile *Profile) Normalizer {
	if profile == nil {
		profile = DefaultProfile()
	}
	return &normalizer{profile: profile}
}

func (n *normalizer) Normalize(
	ctx context.Context,
	table *domain.RawTable,
) ([]domain.CleanRecord, *domain.QualityReport, error) {
	logger := zerolog.Ctx(ctx)

	columns, missing := n.resolve(table.Header)
	if len(missing) > 0 {
		return nil, nil, &domain.SchemaMismatchError{Missing: missing}
	}

	report := &domain.QualityReport{
		RawRows:  len(table.Rows),
		Dropped:  map[domain.DropReason]int{},
		Resolved: map[string]string{},
	}
	for _, f := range n.profile.Fields {
		if idx, ok := columns[f.Name]; ok {
			report.Resolved[f.Name] = table.Header[idx]
		}
	}

	records := make([]domain.CleanRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec, reason, ok := n.coerce(row, columns)
		if !ok {
			report.Dropped[reason]++
			report.DroppedRows++
			continue
		}
		records = append(records, rec)
	}
	report.CleanRows = len(records)
	report.Missing = missingByColumn(table)

	logger.Debug().
		Str("profile", n.profile.Name).
		Int("raw", report.RawRows).
		Int("clean", report.CleanRows).
		Int("dropped", report.DroppedRows).
		Msg("dataset normalized")

	return records, report, nil
}

// resolve maps each logical field to a header column. Aliases are
// tried in order and compared case-insensitively, so the first alias
// present in the header wins.
func (n *normalizer) resolve(header []string) (map[string]int, []string) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := byName[key]; !seen {
			byName[key] = i
		}
	}

	columns := make(map[string]int, len(n.profile.Fields))
	var missing []string
	for _, f := range n.profile.Fields {
		resolved := false
		for _, alias := range f.Aliases {
			if i, ok := byName[normalizeHeader(alias)]; ok {
				columns[f.Name] = i
				resolved = true
				break
			}
		}
		if !resolved && f.Required {
			missing = append(missing, f.Name)
		}
	}
	sort.Strings(missing)

	return columns, missing
}

// coerce turns one raw row into a CleanRecord. Fields are visited in
// profile order, so the reported drop reason is the first failure.
func (n *normalizer) coerce(row []string, columns map[string]int) (domain.CleanRecord, domain.DropReason, bool) {
	var rec domain.CleanRecord

	for _, f := range n.profile.Fields {
		idx, ok := columns[f.Name]
		if !ok {
			continue
		}

		raw := ""
		if idx < len(row) {
			raw = strings.TrimSpace(row[idx])
		}
		if raw == "" {
			if f.Required {
				return rec, domain.DropReasonMissingValue, false
			}
			continue
		}

		switch f.Kind {
		case FieldKindString:
			setString(&rec, f.Name, strings.ToLower(raw))
		case FieldKindNumber:
			v, parsed := ParseAmount(raw)
			if !parsed {
				if f.Required {
					return rec, domain.DropReasonBadNumber, false
				}
				continue
			}
			setNumber(&rec, f.Name, v)
		case FieldKindDate:
			t, parsed := ParseDate(raw, n.profile.DateLayouts)
			if !parsed {
				if f.Required {
					return rec, domain.DropReasonBadDate, false
				}
				continue
			}
			setDate(&rec, f.Name, t)
		case FieldKindFlag:
			b, parsed := parseFlag(raw)
			if !parsed {
				if f.Required {
					return rec, domain.DropReasonBadNumber, false
				}
				continue
			}
			rec.Late = b
		}
	}

	return rec, "", true
}

func setString(rec *domain.CleanRecord, field, v string) {
	switch field {
	case "order_id":
		rec.OrderID = v
	case "product_id":
		rec.ProductID = v
	case "product_name":
		rec.ProductName = v
	case "category":
		rec.Category = v
	case "customer_id":
		rec.CustomerID = v
	case "segment":
		rec.Segment = v
	case "region":
		rec.Region = v
	case "supplier_region":
		rec.SupplierRegion = v
	case "shipping_mode":
		rec.ShippingMode = v
	case "order_status":
		rec.OrderStatus = v
	}
}

func setNumber(rec *domain.CleanRecord, field string, v float64) {
	switch field {
	case "sales":
		rec.Sales = v
	case "quantity":
		rec.Quantity = v
	case "profit":
		rec.Profit = v
	case "shipping_cost":
		rec.ShippingCost = v
	case "shipping_days":
		rec.ShippingDays = v
	}
}

func setDate(rec *domain.CleanRecord, field string, t time.Time) {
	switch field {
	case "order_date":
		rec.OrderDate = t
	case "ship_date":
		rec.ShipDate = &t
	}
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// missingByColumn counts empty cells per raw column, largest counts
// first with name as the tie break.
func missingByColumn(table *domain.RawTable) []domain.ColumnMissing {
	counts := make([]int, len(table.Header))
	for _, row := range table.Rows {
		for i := range table.Header {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				counts[i]++
			}
		}
	}

	var out []domain.ColumnMissing
	for i, c := range counts {
		if c > 0 {
			out = append(out, domain.ColumnMissing{Column: table.Header[i], Missing: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Missing != out[j].Missing {
			return out[i].Missing > out[j].Missing
		}
		return out[i].Column < out[j].Column
	})

	return out
}
