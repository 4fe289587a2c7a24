package engine

import (
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

const staleAfter = 7 * 24 * time.Hour

var (
	magnitudeHigh = decimal.NewFromInt(1000)
	magnitudeMid  = decimal.NewFromInt(100)
)

// Score ranks an open discrepancy for cycle count assignment. Additive,
// no normalization: severity band, then magnitude band, then age band.
func Score(d *models.Discrepancy, now time.Time) int {
	var score int

	switch d.Severity {
	case models.SeverityCritical:
		score = 100
	case models.SeverityHigh:
		score = 75
	case models.SeverityMedium:
		score = 50
	default:
		score = 25
	}

	if d.VarianceValue != nil {
		abs := d.VarianceValue.Abs()
		if abs.GreaterThan(magnitudeHigh) {
			score += 50
		} else if abs.GreaterThan(magnitudeMid) {
			score += 25
		}
	}

	if now.Sub(d.CreatedAt) > staleAfter {
		score += 25
	}

	return score
}

// ScoreLabel maps a score to the display priority shown on task lists.
func ScoreLabel(score int) string {
	switch {
	case score >= 100:
		return "URGENT"
	case score >= 75:
		return "HIGH"
	case score >= 50:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
