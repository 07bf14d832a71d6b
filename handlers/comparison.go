package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// ComparisonRequest is the expected JSON body for POST /api/boq/comparison.
// The inventory snapshot travels with the request, mirroring how the
// comparison modal receives it; when omitted, the project's stored receipts
// are used instead.
type ComparisonRequest struct {
	InventoryItems []services.InventoryRecord `json:"inventory_items"`
	Filter         string                     `json:"filter"`
	ColumnFilters  map[string]string          `json:"column_filters"`
}

// HandleComparison returns a handler for POST /api/boq/comparison?project_id=.
// It reconciles BOQ items against the inventory snapshot and responds with
// the derived rows plus project-level stats. Stats always cover the whole
// project; the semantic filter narrows only the returned rows.
func HandleComparison(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.URL.Query().Get("project_id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project_id")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req ComparisonRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		items, err := loadProjectItems(app, projectID)
		if err != nil {
			log.Printf("comparison: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		inventory := req.InventoryItems
		if inventory == nil {
			inventory, err = loadProjectInventory(app, projectID)
			if err != nil {
				log.Printf("comparison: %v", err)
				return apiError(e, http.StatusInternalServerError, "Internal error")
			}
		}

		items = services.ApplyFilters(items, req.ColumnFilters)
		rows := services.Compare(items, inventory)
		stats := services.CalcComparisonStats(rows)
		rows = services.FilterRows(rows, req.Filter)

		return e.JSON(http.StatusOK, map[string]any{
			"rows":  rows,
			"stats": stats,
		})
	}
}
