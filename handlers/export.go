package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// HandleComparisonExport returns a handler for
// GET /api/projects/{projectId}/comparison/export. It renders the current
// reconciliation as an Excel workbook and streams it as a download.
func HandleComparisonExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("comparison_export: could not find project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		items, err := loadProjectItems(app, projectID)
		if err != nil {
			log.Printf("comparison_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		inventory, err := loadProjectInventory(app, projectID)
		if err != nil {
			log.Printf("comparison_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		rows := services.Compare(items, inventory)

		xlsxBytes, err := services.GenerateComparisonExcel(services.ComparisonExport{
			ProjectName: project.GetString("name"),
			Date:        time.Now().Format("02 Jan 2006"),
			Rows:        rows,
			Stats:       services.CalcComparisonStats(rows),
		})
		if err != nil {
			log.Printf("comparison_export: failed to generate workbook: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Reconciliation_%s_%s.xlsx",
			sanitizeFilename(project.GetString("name")),
			time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
