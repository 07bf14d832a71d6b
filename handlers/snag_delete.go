package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSnagDelete returns a handler for DELETE /api/snags/{id}.
func HandleSnagDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing snag id")
		}

		record, err := app.FindRecordById("snags", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Snag not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("snag_delete: failed to delete snag %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete snag")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
