package reports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildReslotSuggestions(t *testing.T) {
	name := "Standard Widget"
	rows := []*reslotRow{
		// Single location: never a reslot candidate.
		{Sku: "SINGLE", LocationCount: 1, TotalIssues: 9},
		{Sku: "WIDGET-100", LocationCount: 2, TotalIssues: 3, TotalVariance: decimal.NewFromInt(14), ProductName: &name},
		{Sku: "SPREAD-SKU", LocationCount: 5, TotalIssues: 7, TotalVariance: decimal.NewFromInt(40)},
	}

	suggestions := buildReslotSuggestions(rows)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Sku != "SPREAD-SKU" {
		t.Fatalf("most issues first, got %s", suggestions[0].Sku)
	}
	if suggestions[0].Recommendation != "Consider consolidating to fewer locations" {
		t.Fatalf("wide spread should recommend consolidation: %q", suggestions[0].Recommendation)
	}
	if suggestions[0].Reason != "7 discrepancies across 5 locations" {
		t.Fatalf("unexpected reason: %q", suggestions[0].Reason)
	}
	if suggestions[1].Recommendation != "Review slotting strategy for this SKU" {
		t.Fatalf("narrow spread should recommend review: %q", suggestions[1].Recommendation)
	}
	if suggestions[1].ProductName != "Standard Widget" {
		t.Fatalf("product name not carried: %q", suggestions[1].ProductName)
	}
}

func TestBuildReslotSuggestions_Cap(t *testing.T) {
	rows := make([]*reslotRow, 0, reslotSuggestionCap+5)
	for i := 0; i < reslotSuggestionCap+5; i++ {
		rows = append(rows, &reslotRow{
			Sku:           string(rune('A' + i%26)),
			LocationCount: 2,
			TotalIssues:   i + 1,
		})
	}
	suggestions := buildReslotSuggestions(rows)
	if len(suggestions) != reslotSuggestionCap {
		t.Fatalf("expected %d suggestions, got %d", reslotSuggestionCap, len(suggestions))
	}
}
