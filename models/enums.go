package models

import "errors"

// Closed enum types for every value that crosses the HTTP boundary.
// Query params and request bodies are parsed through these before any
// filter touches the store.

type DiscrepancyType string

const (
	DiscrepancyTypeNegativeOnHand  DiscrepancyType = "negative_on_hand"
	DiscrepancyTypeAdjustmentSpike DiscrepancyType = "adjustment_spike"
	DiscrepancyTypeDriftDetected   DiscrepancyType = "drift_detected"
	DiscrepancyTypeOther           DiscrepancyType = "other"
)

func ParseDiscrepancyType(s string) (DiscrepancyType, error) {
	switch DiscrepancyType(s) {
	case DiscrepancyTypeNegativeOnHand,
		DiscrepancyTypeAdjustmentSpike,
		DiscrepancyTypeDriftDetected,
		DiscrepancyTypeOther:
		return DiscrepancyType(s), nil
	}
	return "", errors.New("invalid discrepancy type")
}

type DiscrepancySeverity string

const (
	SeverityCritical DiscrepancySeverity = "critical"
	SeverityHigh     DiscrepancySeverity = "high"
	SeverityMedium   DiscrepancySeverity = "medium"
	SeverityLow      DiscrepancySeverity = "low"
)

func ParseDiscrepancySeverity(s string) (DiscrepancySeverity, error) {
	switch DiscrepancySeverity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return DiscrepancySeverity(s), nil
	}
	return "", errors.New("invalid discrepancy severity")
}

// Rank orders severities with critical first. MySQL string ordering would
// put medium before low; queries use FIELD() and in-process sorts use this.
func (s DiscrepancySeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

type DiscrepancyStatus string

const (
	DiscrepancyStatusOpen     DiscrepancyStatus = "OPEN"
	DiscrepancyStatusResolved DiscrepancyStatus = "RESOLVED"
)

type ActionType string

const (
	ActionTypeCycleCount      ActionType = "cycle_count"
	ActionTypePhysicalAudit   ActionType = "physical_audit"
	ActionTypeLocationAudit   ActionType = "location_audit"
	ActionTypeReslot          ActionType = "reslot"
	ActionTypeTraining        ActionType = "training"
	ActionTypeProcessReview   ActionType = "process_review"
	ActionTypeAdjustment      ActionType = "adjustment"
	ActionTypeInvestigation   ActionType = "investigation"
	ActionTypeSupervisorAlert ActionType = "supervisor_alert"
	ActionTypeHoldInventory   ActionType = "hold_inventory"
)

var actionTypes = map[string]ActionType{
	"cycle_count":      ActionTypeCycleCount,
	"physical_audit":   ActionTypePhysicalAudit,
	"location_audit":   ActionTypeLocationAudit,
	"reslot":           ActionTypeReslot,
	"training":         ActionTypeTraining,
	"process_review":   ActionTypeProcessReview,
	"adjustment":       ActionTypeAdjustment,
	"investigation":    ActionTypeInvestigation,
	"supervisor_alert": ActionTypeSupervisorAlert,
	"hold_inventory":   ActionTypeHoldInventory,
}

func ParseActionType(s string) (ActionType, error) {
	t, ok := actionTypes[s]
	if !ok {
		return "", errors.New("invalid action type")
	}
	return t, nil
}

// ActionPriority is stored as an integer so ORDER BY priority ASC puts the
// most urgent work first.
type ActionPriority int

const (
	PriorityUrgent ActionPriority = 1 // do today
	PriorityHigh   ActionPriority = 2 // do this week
	PriorityMedium ActionPriority = 3 // schedule this month
	PriorityLow    ActionPriority = 4 // when convenient
)

func ParseActionPriority(n int) (ActionPriority, error) {
	if n < int(PriorityUrgent) || n > int(PriorityLow) {
		return 0, errors.New("invalid action priority")
	}
	return ActionPriority(n), nil
}

func (p ActionPriority) Label() string {
	switch p {
	case PriorityUrgent:
		return "URGENT"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

type ActionStatus string

const (
	ActionStatusPending   ActionStatus = "PENDING"
	ActionStatusExported  ActionStatus = "EXPORTED"
	ActionStatusCompleted ActionStatus = "COMPLETED"
)

func ParseActionStatus(s string) (ActionStatus, error) {
	switch ActionStatus(s) {
	case ActionStatusPending, ActionStatusExported, ActionStatusCompleted:
		return ActionStatus(s), nil
	}
	return "", errors.New("invalid action status")
}

type TrainingPriority string

const (
	TrainingPriorityHigh   TrainingPriority = "HIGH"
	TrainingPriorityMedium TrainingPriority = "MEDIUM"
	TrainingPriorityLow    TrainingPriority = "LOW"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "A"
	UserRoleOperator UserRole = "O"
)
