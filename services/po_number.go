package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// FiscalYear returns the Indian fiscal year label for a date. The fiscal
// year runs April to March: Jan 2026 → "25-26", May 2026 → "26-27".
func FiscalYear(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// formatPONumber uses "-" as separator so project references containing "/"
// cannot break the number.
func formatPONumber(projectRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("ST-PO-%s-%s-%03d", projectRef, fiscalYear, sequence)
}

// NextPONumber creates the next PO number for a project:
// ST-PO-{project_ref}-{fiscal_year}-{sequence}. The sequence is 3-digit
// zero-padded and counts per project per fiscal year. The project's
// reference_number is used when set, falling back to the project ID.
func NextPONumber(app *pocketbase.PocketBase, projectID string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}

	fiscalYear := FiscalYear(now)
	prefix := fmt.Sprintf("ST-PO-%s-%s-", projectRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"purchase_orders",
		"project = {:projectId} && po_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	return formatPONumber(projectRef, fiscalYear, len(existing)+1), nil
}
