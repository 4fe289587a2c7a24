package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
)

// auditChecklist is the fixed walk-through attached to every flagged location.
var auditChecklist = []string{
	"Verify location label is readable and correct",
	"Check physical condition of location",
	"Verify no commingled SKUs",
	"Check adjacent locations for mis-slots",
	"Verify location is accessible",
	"Check for damaged or obstructed inventory",
}

type AuditLocation struct {
	LocationCode      string    `json:"locationCode"`
	IssueCount        int       `json:"issueCount"`
	SeriousIssueCount int       `json:"seriousIssueCount"`
	IssueTypes        []string  `json:"issueTypes"`
	OldestIssue       time.Time `json:"oldestIssue"`
	AuditChecklist    []string  `json:"auditChecklist"`
}

type AuditListResponse struct {
	GeneratedAt   time.Time        `json:"generatedAt"`
	LocationCount int              `json:"locationCount"`
	Locations     []*AuditLocation `json:"locations"`
}

type auditLocationRow struct {
	LocationCode string    `gorm:"column:location_code"`
	IssueCount   int       `gorm:"column:issue_count"`
	SeriousCount int       `gorm:"column:serious_count"`
	IssueTypes   string    `gorm:"column:issue_types"`
	OldestIssue  time.Time `gorm:"column:oldest_issue"`
}

// GetAuditList builds the location audit list: locations with repeated or
// serious open discrepancies, worst first.
func GetAuditList(ctx context.Context, maxLocations int) (*AuditListResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "audit_list", started, map[string]any{"maxLocations": maxLocations})

	cacheKey := fmt.Sprintf("Report:AuditList:%d", maxLocations)
	if reportCacheEnabled() {
		var cached AuditListResponse
		if found, err := cacheGet(cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	sql := `
SELECT
    location_code,
    COUNT(*) AS issue_count,
    SUM(CASE WHEN severity IN ('critical', 'high') THEN 1 ELSE 0 END) AS serious_count,
    GROUP_CONCAT(DISTINCT type) AS issue_types,
    MIN(created_at) AS oldest_issue
FROM discrepancies
WHERE status = 'OPEN'
GROUP BY location_code
`
	var rows []*auditLocationRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}

	resp := &AuditListResponse{
		GeneratedAt: time.Now().UTC(),
		Locations:   buildAuditLocations(rows, maxLocations),
	}
	resp.LocationCount = len(resp.Locations)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, resp, reportCacheTTL())
	}
	return resp, nil
}

// buildAuditLocations keeps locations with at least 2 open issues or at
// least 1 serious one, ordered by serious count then issue count.
func buildAuditLocations(rows []*auditLocationRow, maxLocations int) []*AuditLocation {
	eligible := make([]*auditLocationRow, 0, len(rows))
	for _, r := range rows {
		if r.IssueCount >= 2 || r.SeriousCount >= 1 {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].SeriousCount != eligible[j].SeriousCount {
			return eligible[i].SeriousCount > eligible[j].SeriousCount
		}
		return eligible[i].IssueCount > eligible[j].IssueCount
	})

	locations := make([]*AuditLocation, 0, maxLocations)
	for _, r := range eligible {
		if maxLocations > 0 && len(locations) >= maxLocations {
			break
		}
		locations = append(locations, &AuditLocation{
			LocationCode:      r.LocationCode,
			IssueCount:        r.IssueCount,
			SeriousIssueCount: r.SeriousCount,
			IssueTypes:        splitIssueTypes(r.IssueTypes),
			OldestIssue:       r.OldestIssue,
			AuditChecklist:    auditChecklist,
		})
	}
	return locations
}

func splitIssueTypes(concat string) []string {
	if concat == "" {
		return nil
	}
	return strings.Split(concat, ",")
}
