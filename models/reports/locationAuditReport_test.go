package reports

import (
	"testing"
	"time"
)

func TestBuildAuditLocations_InclusionRules(t *testing.T) {
	oldest := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []*auditLocationRow{
		// One medium issue: excluded.
		{LocationCode: "C-05-04", IssueCount: 1, SeriousCount: 0, IssueTypes: "other", OldestIssue: oldest},
		// Two non-serious issues: included.
		{LocationCode: "A-02-01", IssueCount: 2, SeriousCount: 0, IssueTypes: "drift_detected,other", OldestIssue: oldest},
		// Single serious issue: included.
		{LocationCode: "A-01-01", IssueCount: 1, SeriousCount: 1, IssueTypes: "negative_on_hand", OldestIssue: oldest},
	}

	locations := buildAuditLocations(rows, 20)
	if len(locations) != 2 {
		t.Fatalf("expected 2 audit locations, got %d", len(locations))
	}
	// Serious count dominates the ordering.
	if locations[0].LocationCode != "A-01-01" {
		t.Fatalf("expected serious location first, got %s", locations[0].LocationCode)
	}
	if locations[1].LocationCode != "A-02-01" {
		t.Fatalf("expected repeat-issue location second, got %s", locations[1].LocationCode)
	}
	if len(locations[0].AuditChecklist) == 0 {
		t.Fatal("audit checklist should not be empty")
	}
	if got := locations[1].IssueTypes; len(got) != 2 || got[0] != "drift_detected" || got[1] != "other" {
		t.Fatalf("issue types not split: %v", got)
	}
}

func TestBuildAuditLocations_Cap(t *testing.T) {
	rows := []*auditLocationRow{
		{LocationCode: "L1", IssueCount: 5, SeriousCount: 3},
		{LocationCode: "L2", IssueCount: 4, SeriousCount: 2},
		{LocationCode: "L3", IssueCount: 3, SeriousCount: 1},
	}
	locations := buildAuditLocations(rows, 2)
	if len(locations) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(locations))
	}
	if locations[0].LocationCode != "L1" || locations[1].LocationCode != "L2" {
		t.Fatalf("worst locations should survive the cap: %s, %s",
			locations[0].LocationCode, locations[1].LocationCode)
	}
}
