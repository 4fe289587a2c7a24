package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/shopspring/decimal"
)

// trainingInclusionFloor: operators at or below this many adjustments in the
// window are not reported at all.
const trainingInclusionFloor = 10

type TrainingPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type OperatorTrainingFlag struct {
	UserId              int                     `json:"userId"`
	OperatorName        string                  `json:"operatorName"`
	AdjustmentCount     int                     `json:"adjustmentCount"`
	TotalAdjusted       decimal.Decimal         `json:"totalAdjusted"`
	LocationsTouched    int                     `json:"locationsTouched"`
	SkusTouched         int                     `json:"skusTouched"`
	RelatedIssues       int                     `json:"relatedIssues"`
	TrainingPriority    models.TrainingPriority `json:"trainingPriority"`
	RecommendedTraining []string                `json:"recommendedTraining"`
}

type TrainingFlagsResponse struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Period      TrainingPeriod          `json:"period"`
	FlagCount   int                     `json:"flagCount"`
	Operators   []*OperatorTrainingFlag `json:"operators"`
}

type operatorMetricRow struct {
	UserId           int             `gorm:"column:user_id"`
	OperatorName     *string         `gorm:"column:operator_name"`
	AdjustmentCount  int             `gorm:"column:adjustment_count"`
	TotalAdjusted    decimal.Decimal `gorm:"column:total_adjusted"`
	LocationsTouched int             `gorm:"column:locations_touched"`
	SkusTouched      int             `gorm:"column:skus_touched"`
	RelatedIssues    int             `gorm:"column:related_issues"`
}

// GetTrainingFlags aggregates adjustment activity per operator over the
// trailing window and joins their investigation involvement. Window spans
// all adjustments regardless of discrepancy status.
func GetTrainingFlags(ctx context.Context, days int) (*TrainingFlagsResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "training_flags", started, map[string]any{"days": days})

	cacheKey := fmt.Sprintf("Report:TrainingFlags:%d", days)
	if reportCacheEnabled() {
		var cached TrainingFlagsResponse
		if found, err := cacheGet(cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	now := time.Now().UTC()
	dateFrom := now.Add(-time.Duration(days) * 24 * time.Hour)

	sql := `
SELECT
    oa.user_id,
    u.full_name AS operator_name,
    oa.adjustment_count,
    oa.total_adjusted,
    oa.locations_touched,
    oa.skus_touched,
    COALESCE(oi.issue_count, 0) AS related_issues
FROM (
    SELECT
        user_id,
        COUNT(*) AS adjustment_count,
        SUM(ABS(adjustment_qty)) AS total_adjusted,
        COUNT(DISTINCT location_code) AS locations_touched,
        COUNT(DISTINCT sku) AS skus_touched
    FROM adjustment_snapshots
    WHERE adjustment_date >= @dateFrom
      AND user_id IS NOT NULL
    GROUP BY user_id
) AS oa
LEFT JOIN (
    SELECT
        i.user_id,
        COUNT(*) AS issue_count
    FROM investigations i
    JOIN discrepancies d ON i.discrepancy_id = d.id
    WHERE i.created_at >= @dateFrom
    GROUP BY i.user_id
) AS oi ON oa.user_id = oi.user_id
LEFT JOIN users u ON oa.user_id = u.id
`
	var rows []*operatorMetricRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{"dateFrom": dateFrom}).Scan(&rows).Error; err != nil {
		return nil, err
	}

	operators := buildTrainingFlags(rows)

	flagCount := 0
	for _, op := range operators {
		if op.TrainingPriority != models.TrainingPriorityLow {
			flagCount++
		}
	}

	resp := &TrainingFlagsResponse{
		GeneratedAt: now,
		Period:      TrainingPeriod{From: dateFrom, To: now},
		FlagCount:   flagCount,
		Operators:   operators,
	}

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, resp, reportCacheTTL())
	}
	return resp, nil
}

// buildTrainingFlags applies the inclusion floor and priority bands, most
// active operators first.
func buildTrainingFlags(rows []*operatorMetricRow) []*OperatorTrainingFlag {
	eligible := make([]*operatorMetricRow, 0, len(rows))
	for _, r := range rows {
		if r.AdjustmentCount > trainingInclusionFloor {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].AdjustmentCount > eligible[j].AdjustmentCount
	})

	operators := make([]*OperatorTrainingFlag, 0, len(eligible))
	for _, r := range eligible {
		priority := trainingPriorityFor(r.AdjustmentCount, r.RelatedIssues)
		operators = append(operators, &OperatorTrainingFlag{
			UserId:              r.UserId,
			OperatorName:        utils.DereferencePtr(r.OperatorName),
			AdjustmentCount:     r.AdjustmentCount,
			TotalAdjusted:       r.TotalAdjusted,
			LocationsTouched:    r.LocationsTouched,
			SkusTouched:         r.SkusTouched,
			RelatedIssues:       r.RelatedIssues,
			TrainingPriority:    priority,
			RecommendedTraining: trainingRecommendations(r.AdjustmentCount, r.RelatedIssues, priority),
		})
	}
	return operators
}

func trainingPriorityFor(adjustmentCount int, relatedIssues int) models.TrainingPriority {
	switch {
	case adjustmentCount > 50 && relatedIssues > 5:
		return models.TrainingPriorityHigh
	case adjustmentCount > 20 && relatedIssues > 2:
		return models.TrainingPriorityMedium
	default:
		return models.TrainingPriorityLow
	}
}

func trainingRecommendations(adjustmentCount int, relatedIssues int, priority models.TrainingPriority) []string {
	var recommendations []string

	if adjustmentCount > 30 {
		recommendations = append(recommendations, "Refresh on proper adjustment procedures")
	}
	if relatedIssues > 3 {
		recommendations = append(recommendations, "Review accuracy and attention to detail")
	}
	if priority == models.TrainingPriorityHigh {
		recommendations = append(recommendations,
			"Shadow experienced operator for 1 shift",
			"Review with supervisor")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Monitor performance - no immediate action needed")
	}
	return recommendations
}
