package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePODelete returns a handler for DELETE /api/po/{id}. Line items
// cascade with the order; affected BOQ items get their ordered quantities
// re-synced afterwards.
func HandlePODelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing purchase order id")
		}

		record, err := app.FindRecordById("purchase_orders", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Purchase order not found")
		}

		// Collect linked BOQ items before the cascade wipes the lines.
		lines, _ := app.FindRecordsByFilter(
			"po_line_items",
			"purchase_order = {:poId}",
			"", 0, 0,
			map[string]any{"poId": id},
		)
		var linkedItems []string
		seen := make(map[string]bool)
		for _, line := range lines {
			boqItemID := line.GetString("boq_item")
			if boqItemID == "" || seen[boqItemID] {
				continue
			}
			seen[boqItemID] = true
			linkedItems = append(linkedItems, boqItemID)
		}

		if err := app.Delete(record); err != nil {
			log.Printf("po_delete: failed to delete purchase order %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete purchase order")
		}

		for _, boqItemID := range linkedItems {
			if err := syncOrderedQuantity(app, boqItemID); err != nil {
				log.Printf("po_delete: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
