package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// HandleBOQList returns a handler for GET /api/boq. It responds with the
// project's items plus per-category section totals for the grid.
func HandleBOQList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.URL.Query().Get("project_id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project_id")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		items, err := loadProjectItems(app, projectID)
		if err != nil {
			log.Printf("boq_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		_, _, sectionTotals := services.GroupByCategory(items)

		return e.JSON(http.StatusOK, map[string]any{
			"items":         items,
			"sectionTotals": sectionTotals,
		})
	}
}
