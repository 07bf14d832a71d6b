package handlers

import (
	"log"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// POCreateRequest is the body for POST /api/projects/{projectId}/po.
type POCreateRequest struct {
	VendorID string `json:"vendor_id"`
	Notes    string `json:"notes"`
}

func (r POCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VendorID, validation.Required),
	)
}

// HandlePOCreate returns a handler for POST /api/projects/{projectId}/po.
// The PO number is generated per project per fiscal year; new orders start
// as drafts with no line items.
func HandlePOCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req POCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		if _, err := app.FindRecordById("vendors", req.VendorID); err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
		}

		poNumber, err := services.NextPONumber(app, projectID, time.Now())
		if err != nil {
			log.Printf("po_create: could not generate PO number: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PO number")
		}

		col, err := app.FindCollectionByNameOrId("purchase_orders")
		if err != nil {
			log.Printf("po_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("vendor", req.VendorID)
		record.Set("po_number", poNumber)
		record.Set("status", "draft")
		record.Set("notes", req.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("po_create: error saving purchase order: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create purchase order")
		}

		return e.JSON(http.StatusCreated, map[string]any{"purchase_order": poFromRecord(record)})
	}
}
