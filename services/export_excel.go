package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ComparisonExport holds the data for the reconciliation workbook.
type ComparisonExport struct {
	ProjectName string
	Date        string
	Rows        []ComparisonRow
	Stats       ComparisonStats
}

// GenerateComparisonExcel creates the BOQ vs ordered vs received workbook,
// grouped by category, and returns the file contents.
func GenerateComparisonExcel(data ComparisonExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names cap at 31 chars.
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Reconciliation"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 36, 10, 12, 12, 12, 12, 12, 16, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#EFEDEA"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	overOrderedStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Color: "#B00020"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create over-ordered style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Header rows.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.ProjectName+" — BOQ Reconciliation"))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Date: "+data.Date)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	headers := []string{"#", "Item", "Unit", "BOQ Qty", "Ordered", "Received", "Diff", "Variance", "Status", "BOQ Amount"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s4", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	// Data rows grouped by category with a section header per group.
	items := make([]BOQItem, 0, len(data.Rows))
	rowByID := make(map[string]ComparisonRow, len(data.Rows))
	for _, r := range data.Rows {
		items = append(items, r.Item)
		rowByID[r.Item.ID] = r
	}
	order, groups, totals := GroupByCategory(items)

	rowNum := 5
	index := 1
	for _, category := range order {
		ref := fmt.Sprintf("%d", rowNum)
		if err := f.MergeCell(sheetName, "A"+ref, "H"+ref); err != nil {
			return nil, fmt.Errorf("merge category row: %w", err)
		}
		total := totals[category]
		f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(fmt.Sprintf("%s (%d items)", category, total.Count)))
		f.SetCellValue(sheetName, "J"+ref, FormatINR(total.Amount))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, categoryStyle)
		rowNum++

		for _, item := range groups[category] {
			r := rowByID[item.ID]
			ref := fmt.Sprintf("%d", rowNum)

			f.SetCellValue(sheetName, "A"+ref, index)
			f.SetCellValue(sheetName, "B"+ref, sanitizeExcelCell(item.ItemName))
			f.SetCellValue(sheetName, "C"+ref, sanitizeExcelCell(item.Unit))
			f.SetCellValue(sheetName, "D"+ref, r.BOQQty)
			f.SetCellValue(sheetName, "E"+ref, r.OrderedQty)
			f.SetCellValue(sheetName, "F"+ref, r.ReceivedQty)
			f.SetCellValue(sheetName, "G"+ref, r.Difference)
			f.SetCellValue(sheetName, "H"+ref, FormatPercent(r.Variance))
			f.SetCellValue(sheetName, "I"+ref, r.Status)
			f.SetCellValue(sheetName, "J"+ref, FormatINR(r.BOQAmount))

			style := rowStyle
			if r.Status == VarianceOverOrdered {
				style = overOrderedStyle
			}
			f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, style)

			rowNum++
			index++
		}
	}

	// Summary rows.
	rowNum++

	summaries := []struct {
		label string
		value string
	}{
		{"Total BOQ Value:", FormatINR(data.Stats.TotalBOQValue)},
		{"Total Ordered Value:", FormatINR(data.Stats.TotalOrderedValue)},
		{"Over-ordered Items:", fmt.Sprintf("%d", data.Stats.OverOrderedCount)},
	}
	for _, s := range summaries {
		ref := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "H"+ref, s.label)
		f.SetCellStyle(sheetName, "H"+ref, "H"+ref, summaryLabelStyle)
		f.SetCellValue(sheetName, "I"+ref, s.value)
		f.SetCellStyle(sheetName, "I"+ref, "I"+ref, summaryValueStyle)
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
