package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

var validSnagStatuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"resolved":    true,
	"closed":      true,
}

var validSnagSeverities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

var editableSnagFields = map[string]bool{
	"title":       true,
	"description": true,
	"location":    true,
	"severity":    true,
	"status":      true,
}

// HandleSnagEdit returns a handler for PATCH /api/snags/{id}.
func HandleSnagEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing snag id")
		}

		record, err := app.FindRecordById("snags", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Snag not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		for field, raw := range body {
			if !editableSnagFields[field] {
				continue
			}
			value := cast.ToString(raw)
			switch field {
			case "title":
				if value == "" {
					return apiError(e, http.StatusBadRequest, "Title is required")
				}
			case "status":
				if !validSnagStatuses[value] {
					return apiError(e, http.StatusBadRequest, "Invalid status")
				}
			case "severity":
				if !validSnagSeverities[value] {
					return apiError(e, http.StatusBadRequest, "Invalid severity")
				}
			}
			record.Set(field, value)
		}

		if err := app.Save(record); err != nil {
			log.Printf("snag_edit: error saving snag %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update snag")
		}

		return e.JSON(http.StatusOK, map[string]any{"snag": snagFromRecord(record)})
	}
}
