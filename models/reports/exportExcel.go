package reports

import (
	"fmt"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/xuri/excelize/v2"
)

var actionExportHeadings = []string{
	"ID", "Type", "Priority", "SKU", "Location",
	"Description", "Instructions", "Status", "Created", "Estimated Impact",
}

// ActionsToExcel renders recommendations as an xlsx workbook with the same
// column set as the CSV export.
func ActionsToExcel(actions []*models.ActionRecommendation) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	// Add headers
	col := 'A'
	for _, h := range actionExportHeadings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, a := range actions {
		rowNo := fmt.Sprint(i + 2)
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		values := []interface{}{
			a.ID,
			string(a.Type),
			int(a.Priority),
			a.Sku,
			a.LocationCode,
			a.Description,
			a.Instructions,
			string(a.Status),
			created,
			a.EstimatedImpact.String(),
		}
		col := 'A'
		for _, value := range values {
			f.SetCellValue(sheetName, string(col)+rowNo, value)
			col++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
