package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// SnagCreateRequest is the body for POST /api/projects/{projectId}/snags.
type SnagCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Severity    string `json:"severity"`
}

func (r SnagCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Severity, validation.In("", "low", "medium", "high")),
	)
}

// HandleSnagCreate returns a handler for POST /api/projects/{projectId}/snags.
// New snags open with severity medium unless told otherwise.
func HandleSnagCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req SnagCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("snags")
		if err != nil {
			log.Printf("snag_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		severity := req.Severity
		if severity == "" {
			severity = "medium"
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("title", req.Title)
		record.Set("description", req.Description)
		record.Set("location", req.Location)
		record.Set("severity", severity)
		record.Set("status", "open")

		if err := app.Save(record); err != nil {
			log.Printf("snag_create: error saving snag: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create snag")
		}

		return e.JSON(http.StatusCreated, map[string]any{"snag": snagFromRecord(record)})
	}
}
