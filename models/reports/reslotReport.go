package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/shopspring/decimal"
)

// reslotSuggestionCap is fixed; the report is a shortlist, not a browse page.
const reslotSuggestionCap = 20

type ReslotSuggestion struct {
	Sku                  string          `json:"sku"`
	ProductName          string          `json:"productName"`
	Category             string          `json:"category"`
	CurrentLocationCount int             `json:"currentLocationCount"`
	TotalIssues          int             `json:"totalIssues"`
	TotalVariance        decimal.Decimal `json:"totalVariance"`
	Recommendation       string          `json:"recommendation"`
	Reason               string          `json:"reason"`
}

type ReslotSuggestionsResponse struct {
	GeneratedAt     time.Time           `json:"generatedAt"`
	SuggestionCount int                 `json:"suggestionCount"`
	Suggestions     []*ReslotSuggestion `json:"suggestions"`
}

type reslotRow struct {
	Sku           string          `gorm:"column:sku"`
	LocationCount int             `gorm:"column:location_count"`
	TotalIssues   int             `gorm:"column:total_issues"`
	TotalVariance decimal.Decimal `gorm:"column:total_variance"`
	ProductName   *string         `gorm:"column:product_name"`
	Category      *string         `gorm:"column:category"`
}

// GetReslotSuggestions finds SKUs with open discrepancies across multiple
// locations, the usual smell of bad slotting.
func GetReslotSuggestions(ctx context.Context) (*ReslotSuggestionsResponse, error) {
	started := time.Now()
	defer logSlowReport(ctx, "reslot_suggestions", started, nil)

	cacheKey := "Report:ReslotSuggestions"
	if reportCacheEnabled() {
		var cached ReslotSuggestionsResponse
		if found, err := cacheGet(cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	sql := `
SELECT
    si.sku,
    si.location_count,
    si.total_issues,
    si.total_variance,
    p.name AS product_name,
    p.category
FROM (
    SELECT
        sku,
        COUNT(DISTINCT location_code) AS location_count,
        COUNT(*) AS total_issues,
        SUM(ABS(variance)) AS total_variance
    FROM discrepancies
    WHERE status = 'OPEN'
    GROUP BY sku
) AS si
LEFT JOIN products p ON si.sku = p.sku
`
	var rows []*reslotRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}

	resp := &ReslotSuggestionsResponse{
		GeneratedAt: time.Now().UTC(),
		Suggestions: buildReslotSuggestions(rows),
	}
	resp.SuggestionCount = len(resp.Suggestions)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, resp, reportCacheTTL())
	}
	return resp, nil
}

// buildReslotSuggestions keeps SKUs touching at least 2 distinct locations,
// most issues first, capped at 20.
func buildReslotSuggestions(rows []*reslotRow) []*ReslotSuggestion {
	eligible := make([]*reslotRow, 0, len(rows))
	for _, r := range rows {
		if r.LocationCount >= 2 {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].TotalIssues > eligible[j].TotalIssues
	})

	suggestions := make([]*ReslotSuggestion, 0, reslotSuggestionCap)
	for _, r := range eligible {
		if len(suggestions) >= reslotSuggestionCap {
			break
		}
		recommendation := "Review slotting strategy for this SKU"
		if r.LocationCount > 3 {
			recommendation = "Consider consolidating to fewer locations"
		}
		suggestions = append(suggestions, &ReslotSuggestion{
			Sku:                  r.Sku,
			ProductName:          utils.DereferencePtr(r.ProductName),
			Category:             utils.DereferencePtr(r.Category),
			CurrentLocationCount: r.LocationCount,
			TotalIssues:          r.TotalIssues,
			TotalVariance:        r.TotalVariance,
			Recommendation:       recommendation,
			Reason:               fmt.Sprintf("%d discrepancies across %d locations", r.TotalIssues, r.LocationCount),
		})
	}
	return suggestions
}
