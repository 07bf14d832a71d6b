package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var validProjectStatuses = map[string]bool{
	"active":    true,
	"on_hold":   true,
	"completed": true,
}

// ProjectCreateRequest is the body for POST /api/projects.
type ProjectCreateRequest struct {
	Name            string `json:"name"`
	Client          string `json:"client"`
	Location        string `json:"location"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
}

func (r ProjectCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Status, validation.In("", "active", "on_hold", "completed")),
	)
}

// HandleProjectCreate returns a handler for POST /api/projects.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req ProjectCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		status := req.Status
		if status == "" {
			status = "active"
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("client", req.Client)
		record.Set("location", req.Location)
		record.Set("reference_number", req.ReferenceNumber)
		record.Set("status", status)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: error saving project: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create project")
		}

		return e.JSON(http.StatusCreated, map[string]any{"project": projectFromRecord(record)})
	}
}
