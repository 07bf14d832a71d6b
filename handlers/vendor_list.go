package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func vendorFromRecord(r *core.Record) map[string]any {
	return map[string]any{
		"id":           r.Id,
		"name":         r.GetString("name"),
		"city":         r.GetString("city"),
		"gstin":        r.GetString("gstin"),
		"contact_name": r.GetString("contact_name"),
		"phone":        r.GetString("phone"),
	}
}

// HandleVendorList returns a handler for GET /api/vendors.
func HandleVendorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		records, err := app.FindAllRecords(col)
		if err != nil {
			log.Printf("vendor_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		vendors := make([]map[string]any, 0, len(records))
		for _, r := range records {
			vendors = append(vendors, vendorFromRecord(r))
		}

		return e.JSON(http.StatusOK, map[string]any{"vendors": vendors})
	}
}
