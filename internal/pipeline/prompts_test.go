package pipeline

import (
	"strings"
	"testing"
)

func TestBuildExtractionPrompt_Deterministic(t *testing.T) {
	vendors := []string{"Acme", "ATM", "Overdraft Fee"}
	text := "11/02/2023 Card Purchase ACME SUPPLIES 42.00"

	first := BuildExtractionPrompt(text, vendors)
	second := BuildExtractionPrompt(text, vendors)

	if first != second {
		t.Error("Expected byte-identical output for identical inputs")
	}
}

func TestBuildExtractionPrompt_EmbedsInputs(t *testing.T) {
	vendors := []string{"Acme", "ATM"}
	text := "11/02/2023 Card Purchase ACME SUPPLIES 42.00"

	prompt := BuildExtractionPrompt(text, vendors)

	for _, vendor := range vendors {
		if !strings.Contains(prompt, `"`+vendor+`"`) {
			t.Errorf("Expected prompt to contain vendor %q", vendor)
		}
	}
	if !strings.Contains(prompt, text) {
		t.Error("Expected prompt to contain the page text verbatim")
	}
	if !strings.Contains(prompt, `"`+UnknownVendor+`"`) {
		t.Error("Expected prompt to name the Unknown fallback")
	}

	// The output contract names exactly the five record keys.
	for _, key := range []string{"Date", "Description", "Deposits_Credits", "Withdrawals_Debits", "Vendor Name"} {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Errorf("Expected prompt to name output key %q", key)
		}
	}
}

func TestBuildExtractionPrompt_NilVendors(t *testing.T) {
	prompt := BuildExtractionPrompt("some text", nil)

	if !strings.Contains(prompt, "[]") {
		t.Error("Expected nil vendor list to serialize as an empty JSON array")
	}
}
