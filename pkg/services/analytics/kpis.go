package analytics

import (
	"github.com/de-tools/chain-atlas/pkg/models/domain"
)

// Snapshot computes the headline KPIs over the filtered records.
func Snapshot(records []domain.CleanRecord, filter domain.Filter) (*domain.KPISnapshot, error) {
	var (
		snap      domain.KPISnapshot
		orders    = map[string]struct{}{}
		products  = map[string]struct{}{}
		customers = map[string]struct{}{}
		late      int
	)

	for _, r := range records {
		if !filter.Match(r) {
			continue
		}

		snap.Records++
		snap.SalesTotal += r.Sales
		snap.ProfitTotal += r.Profit
		snap.QuantityTotal += r.Quantity
		if r.Late {
			late++
		}
		if r.OrderID != "" {
			orders[r.OrderID] = struct{}{}
		}
		if r.ProductID != "" {
			products[r.ProductID] = struct{}{}
		}
		if r.CustomerID != "" {
			customers[r.CustomerID] = struct{}{}
		}
		if snap.From.IsZero() || r.OrderDate.Before(snap.From) {
			snap.From = r.OrderDate
		}
		if snap.To.IsZero() || r.OrderDate.After(snap.To) {
			snap.To = r.OrderDate
		}
	}

	if snap.Records == 0 {
		return nil, domain.ErrEmptyInput
	}

	snap.Orders = len(orders)
	if snap.Orders == 0 {
		// datasets without an order id column count each record as an order
		snap.Orders = snap.Records
	}
	snap.Products = len(products)
	snap.Customers = len(customers)
	snap.LateRate = float64(late) / float64(snap.Records)
	snap.AvgOrderValue = snap.SalesTotal / float64(snap.Orders)

	return &snap, nil
}
