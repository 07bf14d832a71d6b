package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleVendorDelete returns a handler for DELETE /api/vendors/{id}. Vendors
// referenced by purchase orders cannot be removed.
func HandleVendorDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing vendor id")
		}

		record, err := app.FindRecordById("vendors", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Vendor not found")
		}

		linked, err := app.FindRecordsByFilter(
			"purchase_orders",
			"vendor = {:vendorId}",
			"", 1, 0,
			map[string]any{"vendorId": id},
		)
		if err == nil && len(linked) > 0 {
			return apiError(e, http.StatusConflict, "Vendor has purchase orders and cannot be deleted")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("vendor_delete: failed to delete vendor %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete vendor")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
