package service

import "testing"

func TestParseSupplierRowCountryHeuristic(t *testing.T) {
	// Country sits at index 4, fields are read relative to it
	row := []string{
		"ignored", "SUP-001", "Acme Steel", "Jl. Industri 12", "Indonesia",
		"Budi", "budi@acme.co.id", "steel", "IDR", "FOB", "30", "DHL",
	}
	parsed, err := parseSupplierRow(row)
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if parsed.Code != "SUP-001" {
		t.Errorf("Expected code SUP-001, got %q", parsed.Code)
	}
	if parsed.Name != "Acme Steel" {
		t.Errorf("Expected name Acme Steel, got %q", parsed.Name)
	}
	if parsed.Country != "Indonesia" {
		t.Errorf("Expected country Indonesia, got %q", parsed.Country)
	}
	if parsed.TOP != 30 {
		t.Errorf("Expected TOP 30, got %d", parsed.TOP)
	}
	if parsed.Forwarder != "DHL" {
		t.Errorf("Expected forwarder DHL, got %q", parsed.Forwarder)
	}
}

func TestParseSupplierRowCountryCaseInsensitive(t *testing.T) {
	row := []string{"x", "SUP-002", "Tokyo Parts", "Chiyoda 1-1", "JAPAN", "Sato", "", "", "JPY"}
	parsed, err := parseSupplierRow(row)
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if parsed.Country != "JAPAN" {
		t.Errorf("Expected country cell kept verbatim, got %q", parsed.Country)
	}
	if parsed.Currency != "JPY" {
		t.Errorf("Expected currency JPY, got %q", parsed.Currency)
	}
}

func TestParseSupplierRowNoCountry(t *testing.T) {
	row := []string{"SUP-003", "Nowhere Co", "Some Street", "Atlantis"}
	if _, err := parseSupplierRow(row); err == nil {
		t.Error("Expected error for row without a recognizable country")
	}
}

func TestParseSupplierRowMissingCodeOrName(t *testing.T) {
	// Country found at index 0 so code/name offsets fall off the row
	row := []string{"Indonesia", "Budi", "budi@acme.co.id"}
	if _, err := parseSupplierRow(row); err == nil {
		t.Error("Expected error for row missing supplier code and name")
	}
}

func TestParseSupplierRowShortTail(t *testing.T) {
	// Fields past the end of the row come back empty, not out of range
	row := []string{"SUP-004", "Hanoi Metals", "Dist 1", "Vietnam"}
	parsed, err := parseSupplierRow(row)
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if parsed.PIC != "" || parsed.Email != "" || parsed.TOP != 0 {
		t.Errorf("Expected empty trailing fields, got %+v", parsed)
	}
}
