package engine

import (
	"fmt"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

// CandidateAction is what the rule evaluator emits before persistence.
type CandidateAction struct {
	Type            models.ActionType
	Priority        models.ActionPriority
	Description     string
	Instructions    string
	EstimatedImpact decimal.Decimal
}

// Evaluate maps one discrepancy to zero-or-more candidate actions.
// Pure and deterministic; rules fire independently, so a single discrepancy
// can yield several actions.
func Evaluate(d *models.Discrepancy) []CandidateAction {
	var actions []CandidateAction

	// Every discrepancy needs verification.
	cyclePriority := models.PriorityHigh
	if d.Severity == models.SeverityCritical {
		cyclePriority = models.PriorityUrgent
	}
	actions = append(actions, CandidateAction{
		Type:        models.ActionTypeCycleCount,
		Priority:    cyclePriority,
		Description: fmt.Sprintf("Verify %s at %s", d.Sku, d.LocationCode),
		Instructions: fmt.Sprintf(
			"Count inventory at location %s. System shows variance of %d (%s). Report actual quantity found.",
			d.LocationCode, d.Variance, d.Type),
		EstimatedImpact: impactFromVariance(d),
	})

	// Critical issues need supervisor attention.
	if d.Severity == models.SeverityCritical {
		actions = append(actions, CandidateAction{
			Type:        models.ActionTypeSupervisorAlert,
			Priority:    models.PriorityUrgent,
			Description: fmt.Sprintf("Critical inventory issue: %s for %s at %s", d.Type, d.Sku, d.LocationCode),
			Instructions: fmt.Sprintf(
				"Investigate critical discrepancy immediately. %s at %s shows variance of %d. %s",
				d.Sku, d.LocationCode, d.Variance, d.Description),
			EstimatedImpact: impactOrZero(d),
		})
	}

	// Negative inventory needs hold.
	if d.Type == models.DiscrepancyTypeNegativeOnHand {
		actions = append(actions, CandidateAction{
			Type:        models.ActionTypeHoldInventory,
			Priority:    models.PriorityUrgent,
			Description: fmt.Sprintf("Hold orders for %s pending investigation", d.Sku),
			Instructions: fmt.Sprintf(
				"Do not allocate or pick %s from %s until inventory is verified. System shows %s variance of %d.",
				d.Sku, d.LocationCode, d.Type, d.Variance),
			EstimatedImpact: decimal.Zero,
		})
	}

	// Recurring issues at location need audit.
	if d.Type == models.DiscrepancyTypeAdjustmentSpike || d.Type == models.DiscrepancyTypeDriftDetected {
		actions = append(actions, CandidateAction{
			Type:        models.ActionTypeLocationAudit,
			Priority:    models.PriorityHigh,
			Description: fmt.Sprintf("Audit location %s", d.LocationCode),
			Instructions: fmt.Sprintf(
				"Physical audit of location %s (%s on %s, variance %d). Check: label visibility, physical condition, adjacent locations, slotting appropriateness.",
				d.LocationCode, d.Type, d.Sku, d.Variance),
			EstimatedImpact: decimal.Zero,
		})
	}

	return actions
}

// impactFromVariance prefers the currency magnitude when the detector
// provided one; otherwise falls back to 10x the unit variance.
func impactFromVariance(d *models.Discrepancy) decimal.Decimal {
	if d.VarianceValue != nil {
		return d.VarianceValue.Abs()
	}
	return decimal.NewFromInt(int64(d.Variance) * 10).Abs()
}

func impactOrZero(d *models.Discrepancy) decimal.Decimal {
	if d.VarianceValue != nil {
		return d.VarianceValue.Abs()
	}
	return decimal.Zero
}
