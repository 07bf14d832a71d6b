package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDelete returns a handler for DELETE /api/projects/{id}.
// BOQ items, receipts, snags and category lists cascade with the project.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: failed to delete project %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete project")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
