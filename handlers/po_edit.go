package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

var validPOStatuses = map[string]bool{
	"draft":     true,
	"issued":    true,
	"received":  true,
	"cancelled": true,
}

// poStatusTransitions is the allowed workflow: draft → issued → received,
// with cancellation possible until the order is received.
var poStatusTransitions = map[string][]string{
	"draft":     {"issued", "cancelled"},
	"issued":    {"received", "cancelled"},
	"received":  {},
	"cancelled": {},
}

func poCanTransition(from, to string) bool {
	for _, allowed := range poStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// HandlePOEdit returns a handler for PATCH /api/po/{id}. Status transitions
// ripple into the BOQ grid: issuing or cancelling re-syncs ordered
// quantities, receiving books the delivery into inventory.
func HandlePOEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing purchase order id")
		}

		record, err := app.FindRecordById("purchase_orders", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Purchase order not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		newStatus := ""
		if raw, ok := body["status"]; ok {
			newStatus = cast.ToString(raw)
			if !validPOStatuses[newStatus] {
				return apiError(e, http.StatusBadRequest, "Invalid status")
			}
			current := record.GetString("status")
			if newStatus != current && !poCanTransition(current, newStatus) {
				return apiError(e, http.StatusBadRequest, "Invalid status transition")
			}
			record.Set("status", newStatus)
		}

		if raw, ok := body["notes"]; ok {
			record.Set("notes", cast.ToString(raw))
		}

		if raw, ok := body["vendor_id"]; ok {
			vendorID := cast.ToString(raw)
			if _, err := app.FindRecordById("vendors", vendorID); err != nil {
				return apiError(e, http.StatusNotFound, "Vendor not found")
			}
			record.Set("vendor", vendorID)
		}

		if err := app.Save(record); err != nil {
			log.Printf("po_edit: error saving purchase order %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update purchase order")
		}

		switch newStatus {
		case "received":
			if err := recordPOReceipt(app, record); err != nil {
				log.Printf("po_edit: receipt for %s: %v", id, err)
			}
		case "cancelled":
			syncLinkedItems(app, id)
		}

		return e.JSON(http.StatusOK, map[string]any{"purchase_order": poFromRecord(record)})
	}
}
