package domain

import "time"

// CleanRecord is one validated shipment row with every field coerced
// to its target type. Categorical values are trimmed and lower-cased
// so grouping and filtering compare like with like.
type CleanRecord struct {
	OrderID        string
	OrderDate      time.Time
	ShipDate       *time.Time
	ProductID      string
	ProductName    string
	Category       string
	CustomerID     string
	Segment        string
	Region         string
	SupplierRegion string
	ShippingMode   string
	OrderStatus    string
	Sales          float64
	Quantity       float64
	Profit         float64
	ShippingCost   float64
	ShippingDays   float64
	Late           bool
}

type Dimension string

const (
	DimensionProduct        Dimension = "product"
	DimensionCategory       Dimension = "category"
	DimensionCustomer       Dimension = "customer"
	DimensionSegment        Dimension = "segment"
	DimensionRegion         Dimension = "region"
	DimensionSupplierRegion Dimension = "supplier_region"
	DimensionShippingMode   Dimension = "shipping_mode"
)

// Dimensions lists the supported group-by dimensions in display order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionProduct,
		DimensionCategory,
		DimensionCustomer,
		DimensionSegment,
		DimensionRegion,
		DimensionSupplierRegion,
		DimensionShippingMode,
	}
}

func (d Dimension) Valid() bool {
	switch d {
	case DimensionProduct, DimensionCategory, DimensionCustomer, DimensionSegment,
		DimensionRegion, DimensionSupplierRegion, DimensionShippingMode:
		return true
	}
	return false
}

// Value returns the record's partition key for the dimension. Records
// without a value fall into the "unknown" partition so per-partition
// counts always add up to the record count.
func (r CleanRecord) Value(d Dimension) string {
	var v string
	switch d {
	case DimensionProduct:
		v = r.ProductName
		if v == "" {
			v = r.ProductID
		}
	case DimensionCategory:
		v = r.Category
	case DimensionCustomer:
		v = r.CustomerID
	case DimensionSegment:
		v = r.Segment
	case DimensionRegion:
		v = r.Region
	case DimensionSupplierRegion:
		v = r.SupplierRegion
	case DimensionShippingMode:
		v = r.ShippingMode
	}
	if v == "" {
		return "unknown"
	}
	return v
}

// MeasureColumns lists the numeric measures available for correlation,
// in display order.
func MeasureColumns() []string {
	return []string{"sales", "quantity", "profit", "shipping_cost", "shipping_days"}
}

// Measure returns the named numeric field, or false for an unknown
// column name.
func (r CleanRecord) Measure(name string) (float64, bool) {
	switch name {
	case "sales":
		return r.Sales, true
	case "quantity":
		return r.Quantity, true
	case "profit":
		return r.Profit, true
	case "shipping_cost":
		return r.ShippingCost, true
	case "shipping_days":
		return r.ShippingDays, true
	}
	return 0, false
}
