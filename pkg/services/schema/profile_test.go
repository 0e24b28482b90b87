package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func fieldByName(p *Profile, name string) *Field {
	for i := range p.Fields {
		if p.Fields[i].Name == name {
			return &p.Fields[i]
		}
	}
	return nil
}

func TestLoadProfile_ValidYAML_OverridesFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	// No indentation tricks inside the backtick block, YAML is space sensitive
	content := `name: "warehouse-eu"
date_layouts:
  - "02.01.2006"
fields:
  sales:
    aliases:
      - "Umsatz"
  profit:
    required: true
`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test profile: %v", err)
	}

	// When
	profile, err := LoadProfile(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Name != "warehouse-eu" {
		t.Errorf("expected Name=warehouse-eu, got %s", profile.Name)
	}
	if len(profile.DateLayouts) != 1 || profile.DateLayouts[0] != "02.01.2006" {
		t.Errorf("expected date layouts to be replaced, got %v", profile.DateLayouts)
	}

	sales := fieldByName(profile, "sales")
	if sales == nil || len(sales.Aliases) != 1 || sales.Aliases[0] != "Umsatz" {
		t.Errorf("expected sales aliases to be replaced, got %+v", sales)
	}
	if !sales.Required {
		t.Error("expected sales to stay required")
	}

	profit := fieldByName(profile, "profit")
	if profit == nil || !profit.Required {
		t.Errorf("expected profit to become required, got %+v", profit)
	}

	// Fields the file does not mention keep their defaults
	region := fieldByName(profile, "region")
	if region == nil || len(region.Aliases) == 0 {
		t.Errorf("expected region defaults to survive, got %+v", region)
	}
}

func TestLoadProfile_UnknownField_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	content := `fields:
  warehouse_distance:
    aliases:
      - "Distance"
`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test profile: %v", err)
	}

	// When
	_, err = LoadProfile(path)

	// Then
	if err == nil {
		t.Error("expected error for unknown logical field, got nil")
	}
}

func TestLoadProfile_MissingFile_ReturnsError(t *testing.T) {
	// When
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))

	// Then
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestDefaultProfile_RequiredFields(t *testing.T) {
	profile := DefaultProfile()

	expected := map[string]bool{
		"order_date":    true,
		"product_id":    true,
		"customer_id":   true,
		"region":        true,
		"shipping_mode": true,
		"sales":         true,
		"quantity":      true,
		"late":          true,
	}
	for _, f := range profile.Fields {
		if f.Required != expected[f.Name] {
			t.Errorf("field %s: expected required=%v, got %v", f.Name, expected[f.Name], f.Required)
		}
	}
}
