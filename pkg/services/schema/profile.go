package schema

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type FieldKind string

const (
	FieldKindString FieldKind = "string"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindFlag   FieldKind = "flag"
)

// Field describes one logical column of the shipment model: the
// header aliases it may appear under and whether a row is dropped when
// it cannot be read. The kind is fixed per field and not configurable.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Aliases  []string
}

// Profile binds logical fields to the physical headers of one dataset
// family. Profiles are loaded from YAML files; anything a file leaves
// out falls back to the built-in defaults.
type Profile struct {
	Name        string
	DateLayouts []string
	Fields      []Field
}

type fieldConfig struct {
	Aliases  []string `mapstructure:"aliases"`
	Required *bool    `mapstructure:"required"`
}

type profileConfig struct {
	Name        string                 `mapstructure:"name"`
	DateLayouts []string               `mapstructure:"date_layouts"`
	Fields      map[string]fieldConfig `mapstructure:"fields"`
}

// LoadProfile reads a schema profile from a YAML file. Field entries
// override the default aliases and required flag for that logical
// field; unknown logical fields are rejected.
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg profileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse schema profile: %w", err)
	}

	profile := DefaultProfile()
	if cfg.Name != "" {
		profile.Name = cfg.Name
	}
	if len(cfg.DateLayouts) > 0 {
		profile.DateLayouts = cfg.DateLayouts
	}

	known := make(map[string]int, len(profile.Fields))
	for i, f := range profile.Fields {
		known[f.Name] = i
	}

	for name, fc := range cfg.Fields {
		i, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown logical field %q in %s", name, profilePath)
		}
		if len(fc.Aliases) > 0 {
			profile.Fields[i].Aliases = fc.Aliases
		}
		if fc.Required != nil {
			profile.Fields[i].Required = *fc.Required
		}
	}

	return profile, nil
}

// DefaultProfile targets the DataCo supply chain export and the
// common header variants of similar Kaggle datasets.
func DefaultProfile() *Profile {
	return &Profile{
		Name: "dataco",
		DateLayouts: []string{
			"1/2/2006 15:04",
			"1/2/2006 15:04:05",
			"1/2/2006",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
			"2006/01/02",
			time.RFC3339,
		},
		Fields: []Field{
			{Name: "order_id", Kind: FieldKindString,
				Aliases: []string{"Order Id", "Order ID", "Order Number"}},
			{Name: "order_date", Kind: FieldKindDate, Required: true,
				Aliases: []string{"order date (DateOrders)", "Order Date", "Order_Date", "Date"}},
			{Name: "ship_date", Kind: FieldKindDate,
				Aliases: []string{"shipping date (DateOrders)", "Shipping Date", "Ship Date"}},
			{Name: "product_id", Kind: FieldKindString, Required: true,
				Aliases: []string{"Product Card Id", "Product Id", "Product ID", "SKU"}},
			{Name: "product_name", Kind: FieldKindString,
				Aliases: []string{"Product Name", "Product"}},
			{Name: "category", Kind: FieldKindString,
				Aliases: []string{"Category Name", "Product Category", "Product type"}},
			{Name: "customer_id", Kind: FieldKindString, Required: true,
				Aliases: []string{"Customer Id", "Customer ID"}},
			{Name: "segment", Kind: FieldKindString,
				Aliases: []string{"Customer Segment", "Segment", "Customer demographics"}},
			{Name: "region", Kind: FieldKindString, Required: true,
				Aliases: []string{"Order Region", "Region", "Market"}},
			{Name: "supplier_region", Kind: FieldKindString,
				Aliases: []string{"Supplier Region", "Warehouse Region", "Supplier name", "Location"}},
			{Name: "shipping_mode", Kind: FieldKindString, Required: true,
				Aliases: []string{"Shipping Mode", "Shipping carriers", "Carrier"}},
			{Name: "order_status", Kind: FieldKindString,
				Aliases: []string{"Order Status", "Delivery Status", "Status"}},
			{Name: "sales", Kind: FieldKindNumber, Required: true,
				Aliases: []string{"Sales", "Revenue generated", "Revenue", "Sales per customer"}},
			{Name: "quantity", Kind: FieldKindNumber, Required: true,
				Aliases: []string{"Order Item Quantity", "Quantity", "Number of products sold"}},
			{Name: "profit", Kind: FieldKindNumber,
				Aliases: []string{"Order Profit Per Order", "Benefit per order", "Profit"}},
			{Name: "shipping_cost", Kind: FieldKindNumber,
				Aliases: []string{"Shipping costs", "Shipping Cost", "Freight Cost"}},
			{Name: "shipping_days", Kind: FieldKindNumber,
				Aliases: []string{"Days for shipping (real)", "Shipping times", "Lead time", "Shipping days"}},
			{Name: "late", Kind: FieldKindFlag, Required: true,
				Aliases: []string{"Late_delivery_risk", "Late Delivery Risk", "Late"}},
		},
	}
}
