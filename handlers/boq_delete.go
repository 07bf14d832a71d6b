package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBOQDelete returns a handler for DELETE /api/boq?id=<id>.
func HandleBOQDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.URL.Query().Get("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing item id")
		}

		record, err := app.FindRecordById("boq_items", id)
		if err != nil {
			log.Printf("boq_delete: could not find item %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("boq_delete: failed to delete item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete item")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
