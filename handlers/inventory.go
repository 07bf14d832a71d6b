package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// InventoryCreateRequest is the body for POST /api/projects/{projectId}/inventory.
type InventoryCreateRequest struct {
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	Reference string  `json:"reference"`
}

func (r InventoryCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemName, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(0.01)),
	)
}

// HandleInventoryList returns a handler for GET /api/projects/{projectId}/inventory.
func HandleInventoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("inventory_records")
		if err != nil {
			log.Printf("inventory_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		records, err := app.FindRecordsByFilter(col, "project = {:projectId}", "created", 0, 0, map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("inventory_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, map[string]any{
				"id":        r.Id,
				"item_name": r.GetString("item_name"),
				"quantity":  r.GetFloat("quantity"),
				"reference": r.GetString("reference"),
				"created":   r.GetString("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"records": out})
	}
}

// HandleInventoryCreate returns a handler for POST /api/projects/{projectId}/inventory.
// It records a single material receipt.
func HandleInventoryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req InventoryCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("inventory_records")
		if err != nil {
			log.Printf("inventory_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("item_name", req.ItemName)
		record.Set("quantity", req.Quantity)
		record.Set("reference", req.Reference)

		if err := app.Save(record); err != nil {
			log.Printf("inventory_create: error saving record: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save receipt")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"record": map[string]any{
				"id":        record.Id,
				"item_name": record.GetString("item_name"),
				"quantity":  record.GetFloat("quantity"),
				"reference": record.GetString("reference"),
			},
		})
	}
}

// HandleInventoryImport returns a handler for
// POST /api/projects/{projectId}/inventory/import. The upload is a CSV or
// xlsx delivery sheet; valid rows are saved, rows with errors are reported
// back per row without aborting the whole import.
func HandleInventoryImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseInventorySheet(file, header.Filename)
		if err != nil {
			log.Printf("inventory_import: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("inventory_records")
		if err != nil {
			log.Printf("inventory_import: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		saved := 0
		for _, rec := range result.Records {
			record := core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("item_name", rec.ItemName)
			record.Set("quantity", rec.Quantity)
			record.Set("reference", header.Filename)
			if err := app.Save(record); err != nil {
				log.Printf("inventory_import: error saving row: %v", err)
				continue
			}
			saved++
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": result.TotalRows,
			"valid_rows": result.ValidRows,
			"error_rows": result.ErrorRows,
			"saved":      saved,
			"errors":     result.Errors,
		})
	}
}
