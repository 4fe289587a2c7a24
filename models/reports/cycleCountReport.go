package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/engine"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/shopspring/decimal"
)

type CycleCountTask struct {
	Sequence         int    `json:"sequence"`
	LocationCode     string `json:"locationCode"`
	Sku              string `json:"sku"`
	Priority         string `json:"priority"`
	Reason           string `json:"reason"`
	ExpectedVariance int    `json:"expectedVariance"`
	Zone             string `json:"zone"`
}

type CycleCountListResponse struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	TaskCount   int               `json:"taskCount"`
	Tasks       []*CycleCountTask `json:"tasks"`
}

type cycleCountRow struct {
	ID            string                     `gorm:"column:id"`
	LocationCode  string                     `gorm:"column:location_code"`
	Sku           string                     `gorm:"column:sku"`
	Severity      models.DiscrepancySeverity `gorm:"column:severity"`
	Variance      int                        `gorm:"column:variance"`
	VarianceValue *decimal.Decimal           `gorm:"column:variance_value"`
	CreatedAt     time.Time                  `gorm:"column:created_at"`
	Zone          *string                    `gorm:"column:zone"`
	Cost          *decimal.Decimal           `gorm:"column:cost"`
}

// GetCycleCountList builds the prioritized cycle count task list:
// open discrepancies scored by the engine scorer, highest first.
// minPriority keeps only tasks at least that urgent (0 = no filter).
func GetCycleCountList(ctx context.Context, maxTasks int, zone string, minPriority models.ActionPriority) (*CycleCountListResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "cycle_count_list", started, map[string]any{"maxTasks": maxTasks, "zone": zone})

	cacheKey := fmt.Sprintf("Report:CycleCount:%d:%s:%d", maxTasks, zone, minPriority)
	if reportCacheEnabled() {
		var cached CycleCountListResponse
		if found, err := cacheGet(cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	sqlT := `
SELECT
    d.id,
    d.location_code,
    d.sku,
    d.severity,
    d.variance,
    d.variance_value,
    d.created_at,
    l.zone,
    p.cost
FROM discrepancies d
LEFT JOIN locations l ON d.location_code = l.code
LEFT JOIN products p ON d.sku = p.sku
WHERE d.status = 'OPEN'
{{- if .zone }} AND l.zone = @zone {{- end }}
`
	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{"zone": zone})
	if err != nil {
		return nil, err
	}

	args := map[string]interface{}{}
	if zone != "" {
		args["zone"] = zone
	}

	var rows []*cycleCountRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, args).Scan(&rows).Error; err != nil {
		return nil, err
	}

	resp := &CycleCountListResponse{
		GeneratedAt: time.Now().UTC(),
		Tasks:       buildCycleCountTasks(rows, maxTasks, minPriority, time.Now().UTC()),
	}
	resp.TaskCount = len(resp.Tasks)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, resp, reportCacheTTL())
	}
	return resp, nil
}

// buildCycleCountTasks scores, orders and caps the fetched discrepancies.
// Equal scores fall back to created_at ascending, then id, so the ranking
// is stable regardless of store ordering.
func buildCycleCountTasks(rows []*cycleCountRow, maxTasks int, minPriority models.ActionPriority, now time.Time) []*CycleCountTask {
	type scored struct {
		row   *cycleCountRow
		score int
	}
	scoredRows := make([]scored, 0, len(rows))
	for _, r := range rows {
		d := &models.Discrepancy{
			Severity:      r.Severity,
			VarianceValue: r.VarianceValue,
			CreatedAt:     r.CreatedAt,
		}
		scoredRows = append(scoredRows, scored{row: r, score: engine.Score(d, now)})
	}

	sort.SliceStable(scoredRows, func(i, j int) bool {
		if scoredRows[i].score != scoredRows[j].score {
			return scoredRows[i].score > scoredRows[j].score
		}
		if !scoredRows[i].row.CreatedAt.Equal(scoredRows[j].row.CreatedAt) {
			return scoredRows[i].row.CreatedAt.Before(scoredRows[j].row.CreatedAt)
		}
		return scoredRows[i].row.ID < scoredRows[j].row.ID
	})

	tasks := make([]*CycleCountTask, 0, maxTasks)
	for _, s := range scoredRows {
		if maxTasks > 0 && len(tasks) >= maxTasks {
			break
		}
		label := engine.ScoreLabel(s.score)
		if minPriority != 0 && labelRank(label) > int(minPriority) {
			continue
		}
		tasks = append(tasks, &CycleCountTask{
			Sequence:         len(tasks) + 1,
			LocationCode:     s.row.LocationCode,
			Sku:              s.row.Sku,
			Priority:         label,
			Reason:           cycleCountReason(s.row),
			ExpectedVariance: s.row.Variance,
			Zone:             utils.DereferencePtr(s.row.Zone),
		})
	}
	return tasks
}

func labelRank(label string) int {
	switch label {
	case "URGENT":
		return 1
	case "HIGH":
		return 2
	case "MEDIUM":
		return 3
	default:
		return 4
	}
}

func cycleCountReason(r *cycleCountRow) string {
	if r.Severity == models.SeverityCritical {
		return "Critical discrepancy"
	}
	if r.VarianceValue != nil && r.VarianceValue.GreaterThan(decimal.NewFromInt(100)) {
		return "High value variance"
	}
	return "Standard verification"
}
