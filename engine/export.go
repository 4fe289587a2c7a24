package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
)

var exportHeaders = []string{
	"ID",
	"Type",
	"Priority",
	"SKU",
	"Location",
	"Description",
	"Instructions",
	"Status",
	"Created",
	"Estimated Impact",
}

// ActionsToCSV serializes recommendations to the export format. Only the
// Description and Instructions columns are quote-wrapped (internal quotes
// doubled); every other column is emitted raw. The header row is always
// present, even for an empty set.
func ActionsToCSV(actions []*models.ActionRecommendation) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportHeaders, ","))

	for _, a := range actions {
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			a.ID,
			string(a.Type),
			strconv.Itoa(int(a.Priority)),
			a.Sku,
			a.LocationCode,
			quoteField(a.Description),
			quoteField(a.Instructions),
			string(a.Status),
			created,
			a.EstimatedImpact.String(),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	return b.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
