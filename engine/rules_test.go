package engine

import (
	"testing"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

func TestEvaluate_CriticalNegativeOnHand(t *testing.T) {
	value := decimal.NewFromInt(-500)
	d := &models.Discrepancy{
		ID:            "d-1",
		Sku:           "WIDGET-100",
		LocationCode:  "A-01-01",
		Type:          models.DiscrepancyTypeNegativeOnHand,
		Severity:      models.SeverityCritical,
		Variance:      -12,
		VarianceValue: &value,
	}

	actions := Evaluate(d)
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}

	expected := []struct {
		actionType models.ActionType
		priority   models.ActionPriority
		impact     string
	}{
		{models.ActionTypeCycleCount, models.PriorityUrgent, "500"},
		{models.ActionTypeSupervisorAlert, models.PriorityUrgent, "500"},
		{models.ActionTypeHoldInventory, models.PriorityUrgent, "0"},
	}
	for i, want := range expected {
		got := actions[i]
		if got.Type != want.actionType {
			t.Fatalf("action %d: expected type %s, got %s", i, want.actionType, got.Type)
		}
		if got.Priority != want.priority {
			t.Fatalf("action %d: expected priority %d, got %d", i, want.priority, got.Priority)
		}
		if got.EstimatedImpact.String() != want.impact {
			t.Fatalf("action %d: expected impact %s, got %s", i, want.impact, got.EstimatedImpact.String())
		}
		if got.Description == "" || got.Instructions == "" {
			t.Fatalf("action %d: description/instructions should not be empty", i)
		}
	}
}

func TestEvaluate_MediumDriftFallbackImpact(t *testing.T) {
	d := &models.Discrepancy{
		ID:           "d-2",
		Sku:          "GADGET-010",
		LocationCode: "A-02-01",
		Type:         models.DiscrepancyTypeDriftDetected,
		Severity:     models.SeverityMedium,
		Variance:     3,
	}

	actions := Evaluate(d)
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[0].Type != models.ActionTypeCycleCount || actions[0].Priority != models.PriorityHigh {
		t.Fatalf("expected HIGH cycle_count first, got %s/%d", actions[0].Type, actions[0].Priority)
	}
	// No currency value: impact falls back to 10x the unit variance.
	if actions[0].EstimatedImpact.String() != "30" {
		t.Fatalf("expected fallback impact 30, got %s", actions[0].EstimatedImpact.String())
	}
	if actions[1].Type != models.ActionTypeLocationAudit || actions[1].Priority != models.PriorityHigh {
		t.Fatalf("expected HIGH location_audit second, got %s/%d", actions[1].Type, actions[1].Priority)
	}
	if actions[1].EstimatedImpact.String() != "0" {
		t.Fatalf("expected zero audit impact, got %s", actions[1].EstimatedImpact.String())
	}
}

func TestEvaluate_AdjustmentSpikeGetsLocationAudit(t *testing.T) {
	d := &models.Discrepancy{
		Sku:          "WIDGET-200",
		LocationCode: "B-01-01",
		Type:         models.DiscrepancyTypeAdjustmentSpike,
		Severity:     models.SeverityHigh,
		Variance:     100,
	}
	actions := Evaluate(d)
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[1].Type != models.ActionTypeLocationAudit {
		t.Fatalf("expected location_audit, got %s", actions[1].Type)
	}
}

func TestEvaluate_OtherLowSeverityOnlyCycleCount(t *testing.T) {
	d := &models.Discrepancy{
		Sku:          "CABLE-USB-2M",
		LocationCode: "C-05-04",
		Type:         models.DiscrepancyTypeOther,
		Severity:     models.SeverityLow,
		Variance:     -1,
	}
	actions := Evaluate(d)
	if len(actions) != 1 {
		t.Fatalf("expected exactly the cycle count action, got %d actions", len(actions))
	}
	if actions[0].Type != models.ActionTypeCycleCount || actions[0].Priority != models.PriorityHigh {
		t.Fatalf("unexpected action: %s/%d", actions[0].Type, actions[0].Priority)
	}
	// Negative variance still yields a positive impact estimate.
	if actions[0].EstimatedImpact.String() != "10" {
		t.Fatalf("expected impact 10, got %s", actions[0].EstimatedImpact.String())
	}
}
