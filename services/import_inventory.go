package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportError represents a single field-level error on one uploaded row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating a delivery sheet.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ImportError     `json:"errors"`
	Records   []InventoryRecord `json:"-"`
}

// ParseInventorySheet reads a delivery sheet (CSV or xlsx, chosen by file
// name) and validates it into inventory records. Rows with errors are
// reported but do not abort the import; valid rows still come through.
func ParseInventorySheet(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	if strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		headers, dataRows, err = parseInventoryExcel(file)
	} else {
		headers, dataRows, err = parseInventoryCSV(file)
	}
	if err != nil {
		return nil, err
	}

	nameCol, qtyCol := -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "item name", "item_name", "item":
			nameCol = i
		case "quantity", "qty", "received qty":
			qtyCol = i
		}
	}
	if nameCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("sheet must have 'Item Name' and 'Quantity' columns")
	}

	result := &ImportResult{TotalRows: len(dataRows)}

	for i, cells := range dataRows {
		// Row numbers are 1-based and account for the header row.
		rowNum := i + 2
		rowValid := true

		name := ""
		if nameCol < len(cells) {
			name = strings.TrimSpace(cells[nameCol])
		}
		if name == "" {
			result.Errors = append(result.Errors, ImportError{
				Row: rowNum, Field: "item_name", Message: "item name is required",
			})
			rowValid = false
		}

		qtyRaw := ""
		if qtyCol < len(cells) {
			qtyRaw = strings.TrimSpace(cells[qtyCol])
		}
		qty, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				Row: rowNum, Field: "quantity", Message: fmt.Sprintf("quantity %q is not a number", qtyRaw),
			})
			rowValid = false
		} else if qty <= 0 {
			result.Errors = append(result.Errors, ImportError{
				Row: rowNum, Field: "quantity", Message: "quantity must be greater than zero",
			})
			rowValid = false
		}

		if !rowValid {
			result.ErrorRows++
			continue
		}

		result.ValidRows++
		result.Records = append(result.Records, InventoryRecord{
			ItemName: name,
			Quantity: qty,
		})
	}

	return result, nil
}

// parseInventoryCSV reads a CSV file and returns headers + data rows.
func parseInventoryCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseInventoryExcel reads an xlsx file and returns headers + data rows
// from the first sheet.
func parseInventoryExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}
