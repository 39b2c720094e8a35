package forms

import "testing"

func TestLookupResolvesSpellingVariants(t *testing.T) {
	registry := NewRegistry()

	canonical, ok := registry.Lookup("31")
	if !ok {
		t.Fatal("Expected form 31 to be registered")
	}

	variants := []string{"form-31", "form31", "Form 31", "31", "proof of claim", "Proof of Claim", "FORM-31"}
	for _, variant := range variants {
		def, ok := registry.Lookup(variant)
		if !ok {
			t.Errorf("Expected %q to resolve, got no definition", variant)
			continue
		}
		if def != canonical {
			t.Errorf("Expected %q to resolve to the identical definition object", variant)
		}
	}
}

func TestLookupForm47Variants(t *testing.T) {
	registry := NewRegistry()

	canonical, ok := registry.Lookup("47")
	if !ok {
		t.Fatal("Expected form 47 to be registered")
	}

	for _, variant := range []string{"form-47", "form47", "consumer proposal", "Consumer Proposal"} {
		def, ok := registry.Lookup(variant)
		if !ok || def != canonical {
			t.Errorf("Expected %q to resolve to form 47", variant)
		}
	}
}

func TestLookupUnknownFormType(t *testing.T) {
	registry := NewRegistry()

	for _, unknown := range []string{"form-999", "999", "", "statement of affairs"} {
		if _, ok := registry.Lookup(unknown); ok {
			t.Errorf("Expected %q to be unsupported", unknown)
		}
	}
}

func TestNormalizeFormType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Form-31", "31"},
		{"form31", "31"},
		{" 31 ", "31"},
		{"Proof of Claim", "proof of claim"},
		{"FORM  47", "47"},
		{"form_47", "47"},
	}

	for _, tt := range tests {
		if got := NormalizeFormType(tt.input); got != tt.expected {
			t.Errorf("NormalizeFormType(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestDefinitionInvariants(t *testing.T) {
	registry := NewRegistry()

	for _, def := range registry.Definitions() {
		seen := make(map[string]bool)
		for _, field := range def.Fields() {
			if seen[field.Name] {
				t.Errorf("Form %s declares field %q more than once", def.FormNumber, field.Name)
			}
			seen[field.Name] = true
		}

		for _, field := range def.Fields() {
			if field.Condition != nil && !seen[field.Condition.Field] {
				t.Errorf("Form %s field %q conditions on undeclared field %q",
					def.FormNumber, field.Name, field.Condition.Field)
			}
		}

		if def.FieldCount() != len(def.Fields()) {
			t.Errorf("Form %s FieldCount disagrees with Fields()", def.FormNumber)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"$1,234.50", 1234.50, true},
		{"1234.50", 1234.50, true},
		{"$89,355.00", 89355, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		amount, ok := ParseAmount(tt.input)
		if ok != tt.ok || (ok && amount != tt.expected) {
			t.Errorf("ParseAmount(%q) = %v, %v; expected %v, %v", tt.input, amount, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-03-15", "03/15/2024", "March 15, 2024", "Mar 15, 2024"}
	for _, v := range valid {
		if _, ok := ParseDate(v); !ok {
			t.Errorf("Expected %q to parse", v)
		}
	}

	invalid := []string{"", "yesterday", "2024-13-40"}
	for _, v := range invalid {
		if _, ok := ParseDate(v); ok {
			t.Errorf("Expected %q not to parse", v)
		}
	}
}
