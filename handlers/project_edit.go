package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

var editableProjectFields = map[string]bool{
	"name":             true,
	"client":           true,
	"location":         true,
	"reference_number": true,
	"status":           true,
}

// HandleProjectEdit returns a handler for PATCH /api/projects/{id}. Only the
// fields present in the body are touched.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		for field, raw := range body {
			if !editableProjectFields[field] {
				continue
			}
			value := cast.ToString(raw)
			if field == "name" && value == "" {
				return apiError(e, http.StatusBadRequest, "Project name is required")
			}
			if field == "status" && !validProjectStatuses[value] {
				return apiError(e, http.StatusBadRequest, "Invalid status")
			}
			record.Set(field, value)
		}

		if err := app.Save(record); err != nil {
			log.Printf("project_edit: error saving project %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update project")
		}

		return e.JSON(http.StatusOK, map[string]any{"project": projectFromRecord(record)})
	}
}
