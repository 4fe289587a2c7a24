package reports

import (
	"testing"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

func TestBuildCycleCountTasks_OrderingAndSequence(t *testing.T) {
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	big := decimal.NewFromInt(2000)

	rows := []*cycleCountRow{
		{ID: "d-low", LocationCode: "C-05-04", Sku: "CABLE", Severity: models.SeverityLow, CreatedAt: now},
		{ID: "d-crit", LocationCode: "A-01-01", Sku: "WIDGET", Severity: models.SeverityCritical, VarianceValue: &big, CreatedAt: now},
		{ID: "d-med", LocationCode: "A-02-01", Sku: "GADGET", Severity: models.SeverityMedium, CreatedAt: now},
	}

	tasks := buildCycleCountTasks(rows, 50, 0, now)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Sku != "WIDGET" || tasks[0].Priority != "URGENT" {
		t.Fatalf("highest score should lead: %+v", tasks[0])
	}
	if tasks[1].Sku != "GADGET" || tasks[2].Sku != "CABLE" {
		t.Fatalf("unexpected ordering: %s then %s", tasks[1].Sku, tasks[2].Sku)
	}
	for i, task := range tasks {
		if task.Sequence != i+1 {
			t.Fatalf("task %d has sequence %d", i, task.Sequence)
		}
	}
}

func TestBuildCycleCountTasks_TieBreakIsCreatedAtThenId(t *testing.T) {
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	older := now.Add(-time.Hour)

	rows := []*cycleCountRow{
		{ID: "d-b", Sku: "B", Severity: models.SeverityMedium, CreatedAt: now},
		{ID: "d-a", Sku: "A", Severity: models.SeverityMedium, CreatedAt: now},
		{ID: "d-c", Sku: "C", Severity: models.SeverityMedium, CreatedAt: older},
	}
	tasks := buildCycleCountTasks(rows, 50, 0, now)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	// Equal scores: older created_at first, then id ascending.
	if tasks[0].Sku != "C" || tasks[1].Sku != "A" || tasks[2].Sku != "B" {
		t.Fatalf("tie-break wrong: got %s, %s, %s", tasks[0].Sku, tasks[1].Sku, tasks[2].Sku)
	}
}

func TestBuildCycleCountTasks_CapAndPriorityFloor(t *testing.T) {
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	rows := []*cycleCountRow{
		{ID: "d-1", Sku: "S1", Severity: models.SeverityCritical, CreatedAt: now},
		{ID: "d-2", Sku: "S2", Severity: models.SeverityHigh, CreatedAt: now},
		{ID: "d-3", Sku: "S3", Severity: models.SeverityLow, CreatedAt: now},
	}

	capped := buildCycleCountTasks(rows, 2, 0, now)
	if len(capped) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(capped))
	}

	// Floor of HIGH (2) drops the LOW task but keeps URGENT and HIGH.
	floored := buildCycleCountTasks(rows, 50, models.PriorityHigh, now)
	if len(floored) != 2 {
		t.Fatalf("expected 2 tasks at or above HIGH, got %d", len(floored))
	}
	if floored[0].Priority != "URGENT" || floored[1].Priority != "HIGH" {
		t.Fatalf("unexpected priorities: %s, %s", floored[0].Priority, floored[1].Priority)
	}
}

func TestCycleCountReason(t *testing.T) {
	bigPositive := decimal.NewFromInt(250)
	bigNegative := decimal.NewFromInt(-250)

	cases := []struct {
		name     string
		row      cycleCountRow
		expected string
	}{
		{"critical wins", cycleCountRow{Severity: models.SeverityCritical, VarianceValue: &bigPositive}, "Critical discrepancy"},
		{"high positive value", cycleCountRow{Severity: models.SeverityHigh, VarianceValue: &bigPositive}, "High value variance"},
		{"negative value is not high", cycleCountRow{Severity: models.SeverityHigh, VarianceValue: &bigNegative}, "Standard verification"},
		{"no value", cycleCountRow{Severity: models.SeverityMedium}, "Standard verification"},
	}
	for _, tc := range cases {
		if got := cycleCountReason(&tc.row); got != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}
