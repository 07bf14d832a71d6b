package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// VendorCreateRequest is the body for POST /api/vendors.
type VendorCreateRequest struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	GSTIN       string `json:"gstin"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
}

func (r VendorCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.GSTIN, validation.Length(0, 15)),
	)
}

// HandleVendorCreate returns a handler for POST /api/vendors.
func HandleVendorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req VendorCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendor_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("city", req.City)
		record.Set("gstin", req.GSTIN)
		record.Set("contact_name", req.ContactName)
		record.Set("phone", req.Phone)

		if err := app.Save(record); err != nil {
			log.Printf("vendor_create: error saving vendor: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create vendor")
		}

		return e.JSON(http.StatusCreated, map[string]any{"vendor": vendorFromRecord(record)})
	}
}
