package models

import (
	"context"
	"errors"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDuplicateAction marks a unique-key collision on (discrepancy_id, type).
// Generation treats it as "already recommended" and moves on; it is the sole
// duplicate-suppression mechanism and also what makes concurrent generation
// safe (exactly one insert wins, the rest observe this error).
var ErrDuplicateAction = errors.New("action already exists for discrepancy/type")

const mysqlErrDuplicateEntry = 1062

// ActionRecommendation is a trackable remediation task derived from one
// discrepancy. Created PENDING by the generator; may move to EXPORTED via
// batch export and to COMPLETED via manual update. Never deleted.
type ActionRecommendation struct {
	ID              string          `gorm:"primary_key;size:36" json:"id"`
	Type            ActionType      `gorm:"size:30;not null;uniqueIndex:idx_action_discrepancy_type,priority:2" json:"type"`
	Priority        ActionPriority  `gorm:"not null;index" json:"priority"`
	Description     string          `gorm:"type:text" json:"description"`
	Instructions    string          `gorm:"type:text" json:"instructions"`
	DiscrepancyId   string          `gorm:"size:36;not null;uniqueIndex:idx_action_discrepancy_type,priority:1" json:"discrepancy_id"`
	Sku             string          `gorm:"size:100;index" json:"sku"`
	LocationCode    string          `gorm:"size:50;index" json:"location_code"`
	EstimatedImpact decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"estimated_impact"`
	Status          ActionStatus    `gorm:"type:enum('PENDING', 'EXPORTED', 'COMPLETED');not null;default:PENDING;index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CompletedBy     string          `gorm:"size:100" json:"completed_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
	ExportedAt      *time.Time      `json:"exported_at"`

	// Weak reference: the discrepancy may be resolved independently.
	Discrepancy *Discrepancy `gorm:"foreignKey:DiscrepancyId;references:ID" json:"discrepancy,omitempty"`
}

func (a *ActionRecommendation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// CreateActionRecommendation inserts a new PENDING recommendation.
// A duplicate (discrepancy_id, type) pair returns ErrDuplicateAction.
func CreateActionRecommendation(ctx context.Context, action *ActionRecommendation) error {
	db := config.GetDB()

	action.Status = ActionStatusPending
	err := db.WithContext(ctx).Create(action).Error
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateAction
		}
		return err
	}
	return nil
}

// ActionRecommendationFilter narrows list/export queries. Zero values mean
// "no filter"; Status always has a value (the boundary defaults it to PENDING).
type ActionRecommendationFilter struct {
	Type     ActionType
	Priority ActionPriority
	Status   ActionStatus
	Limit    int
}

// ListActionRecommendations returns recommendations ordered by
// (priority asc, created_at desc) with the related discrepancy attached.
func ListActionRecommendations(ctx context.Context, filter ActionRecommendationFilter) ([]*ActionRecommendation, error) {
	db := config.GetDB()

	dbCtx := db.WithContext(ctx).Model(&ActionRecommendation{}).
		Where("status = ?", filter.Status)
	if filter.Type != "" {
		dbCtx = dbCtx.Where("type = ?", filter.Type)
	}
	if filter.Priority != 0 {
		dbCtx = dbCtx.Where("priority = ?", filter.Priority)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit)
	}

	var actions []*ActionRecommendation
	err := dbCtx.
		Preload("Discrepancy").
		Order("priority ASC, created_at DESC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// GetActionsForExport returns recommendations for the export formatter,
// same ordering as the list endpoint, no limit and no preload.
func GetActionsForExport(ctx context.Context, actionType ActionType, status ActionStatus) ([]*ActionRecommendation, error) {
	db := config.GetDB()

	dbCtx := db.WithContext(ctx).Model(&ActionRecommendation{}).
		Where("status = ?", status)
	if actionType != "" {
		dbCtx = dbCtx.Where("type = ?", actionType)
	}

	var actions []*ActionRecommendation
	if err := dbCtx.Order("priority ASC, created_at DESC").Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// UpdateActionStatus sets status (and notes/completedBy when provided) on a
// single recommendation. Completion stamps completed_at; anything else clears
// it. A COMPLETED action never leaves that state.
func UpdateActionStatus(ctx context.Context, id string, status ActionStatus, notes string, completedBy string) (*ActionRecommendation, error) {
	db := config.GetDB()

	var action ActionRecommendation
	err := db.WithContext(ctx).Model(&ActionRecommendation{}).Where("id = ?", id).Take(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if action.Status == ActionStatusCompleted && status != ActionStatusCompleted {
		return nil, errors.New("completed action cannot change status")
	}

	updates := map[string]interface{}{
		"status":       status,
		"notes":        notes,
		"completed_by": completedBy,
	}
	if status == ActionStatusCompleted {
		now := time.Now().UTC()
		updates["completed_at"] = &now
	} else {
		updates["completed_at"] = nil
	}

	if err := db.WithContext(ctx).Model(&ActionRecommendation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&ActionRecommendation{}).Where("id = ?", id).Take(&action).Error; err != nil {
		return nil, err
	}
	return &action, nil
}

// BatchExportActions marks the given recommendations EXPORTED and stamps
// exported_at. COMPLETED actions are left untouched. Returns how many rows
// were updated.
func BatchExportActions(ctx context.Context, actionIds []string) (int64, error) {
	if len(actionIds) == 0 {
		return 0, nil
	}
	db := config.GetDB()

	now := time.Now().UTC()
	result := db.WithContext(ctx).Model(&ActionRecommendation{}).
		Where("id IN ?", utils.UniqueSlice(actionIds)).
		Where("status <> ?", ActionStatusCompleted).
		Updates(map[string]interface{}{
			"status":      ActionStatusExported,
			"exported_at": &now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
