package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

var editableVendorFields = map[string]bool{
	"name":         true,
	"city":         true,
	"gstin":        true,
	"contact_name": true,
	"phone":        true,
}

// HandleVendorEdit returns a handler for PATCH /api/vendors/{id}.
func HandleVendorEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing vendor id")
		}

		record, err := app.FindRecordById("vendors", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		for field, raw := range body {
			if !editableVendorFields[field] {
				continue
			}
			value := cast.ToString(raw)
			if field == "name" && value == "" {
				return apiError(e, http.StatusBadRequest, "Vendor name is required")
			}
			record.Set(field, value)
		}

		if err := app.Save(record); err != nil {
			log.Printf("vendor_edit: error saving vendor %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update vendor")
		}

		return e.JSON(http.StatusOK, map[string]any{"vendor": vendorFromRecord(record)})
	}
}
