package models

import "testing"

func TestParseActionType(t *testing.T) {
	valid := []string{
		"cycle_count", "physical_audit", "location_audit", "reslot", "training",
		"process_review", "adjustment", "investigation", "supervisor_alert", "hold_inventory",
	}
	for _, s := range valid {
		got, err := ParseActionType(s)
		if err != nil {
			t.Fatalf("ParseActionType(%q) error: %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("ParseActionType(%q) returned %q", s, got)
		}
	}
	for _, s := range []string{"", "CYCLE_COUNT", "cyclecount", "delete_everything"} {
		if _, err := ParseActionType(s); err == nil {
			t.Fatalf("ParseActionType(%q) should fail", s)
		}
	}
}

func TestParseActionPriority(t *testing.T) {
	labels := map[int]string{1: "URGENT", 2: "HIGH", 3: "MEDIUM", 4: "LOW"}
	for n, label := range labels {
		p, err := ParseActionPriority(n)
		if err != nil {
			t.Fatalf("ParseActionPriority(%d) error: %v", n, err)
		}
		if p.Label() != label {
			t.Fatalf("priority %d label expected %s, got %s", n, label, p.Label())
		}
	}
	for _, n := range []int{0, -1, 5, 100} {
		if _, err := ParseActionPriority(n); err == nil {
			t.Fatalf("ParseActionPriority(%d) should fail", n)
		}
	}
}

func TestParseActionStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "EXPORTED", "COMPLETED"} {
		if _, err := ParseActionStatus(s); err != nil {
			t.Fatalf("ParseActionStatus(%q) error: %v", s, err)
		}
	}
	for _, s := range []string{"", "pending", "DONE"} {
		if _, err := ParseActionStatus(s); err == nil {
			t.Fatalf("ParseActionStatus(%q) should fail", s)
		}
	}
}

func TestParseDiscrepancyEnums(t *testing.T) {
	if _, err := ParseDiscrepancyType("negative_on_hand"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDiscrepancyType("positive_on_hand"); err == nil {
		t.Fatal("expected error for unknown discrepancy type")
	}
	if _, err := ParseDiscrepancySeverity("critical"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDiscrepancySeverity("catastrophic"); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}

func TestSeverityRank(t *testing.T) {
	ordered := []DiscrepancySeverity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Fatalf("%s should rank before %s", ordered[i-1], ordered[i])
		}
	}
	// Alphabetical ordering would invert these two.
	if SeverityMedium.Rank() > SeverityLow.Rank() {
		t.Fatal("medium must rank above low")
	}
}
