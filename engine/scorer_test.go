package engine

import (
	"testing"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

func TestScore_Bands(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	big := decimal.NewFromInt(1500)
	mid := decimal.NewFromInt(-250)
	exactMid := decimal.NewFromInt(100)

	cases := []struct {
		name     string
		d        models.Discrepancy
		expected int
	}{
		{
			"critical fresh no value",
			models.Discrepancy{Severity: models.SeverityCritical, CreatedAt: now},
			100,
		},
		{
			"critical big value",
			models.Discrepancy{Severity: models.SeverityCritical, VarianceValue: &big, CreatedAt: now},
			150,
		},
		{
			"high negative mid value counts by magnitude",
			models.Discrepancy{Severity: models.SeverityHigh, VarianceValue: &mid, CreatedAt: now},
			100,
		},
		{
			"boundary value 100 earns no magnitude bonus",
			models.Discrepancy{Severity: models.SeverityMedium, VarianceValue: &exactMid, CreatedAt: now},
			50,
		},
		{
			"low and stale",
			models.Discrepancy{Severity: models.SeverityLow, CreatedAt: now.AddDate(0, 0, -8)},
			50,
		},
		{
			"exactly seven days old is not stale",
			models.Discrepancy{Severity: models.SeverityLow, CreatedAt: now.Add(-7 * 24 * time.Hour)},
			25,
		},
	}
	for _, tc := range cases {
		if got := Score(&tc.d, now); got != tc.expected {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	cases := []struct {
		score    int
		expected string
	}{
		{175, "URGENT"},
		{100, "URGENT"},
		{99, "HIGH"},
		{75, "HIGH"},
		{74, "MEDIUM"},
		{50, "MEDIUM"},
		{49, "LOW"},
		{0, "LOW"},
	}
	for _, tc := range cases {
		if got := ScoreLabel(tc.score); got != tc.expected {
			t.Fatalf("ScoreLabel(%d) expected %s, got %s", tc.score, tc.expected, got)
		}
	}
}
