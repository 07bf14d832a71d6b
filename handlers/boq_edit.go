package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"sitetracker/services"
)

// editableItemFields are the boq_items fields a PATCH may touch.
var editableItemFields = map[string]bool{
	"item_name":        true,
	"category":         true,
	"unit":             true,
	"quantity":         true,
	"ordered_quantity": true,
	"rate":             true,
	"amount":           true,
	"status":           true,
	"order_status":     true,
	"sort_order":       true,
}

var validItemStatuses = map[string]bool{
	services.StatusDraft:     true,
	services.StatusConfirmed: true,
	services.StatusCompleted: true,
}

var validOrderStatuses = map[string]bool{
	services.OrderPending:   true,
	services.OrderOrdered:   true,
	services.OrderReceived:  true,
	services.OrderCancelled: true,
}

// HandleBOQEdit returns a handler for PATCH /api/boq. The body is
// {"id": ..., "<field>": value, ...}; the amount is recomputed whenever
// quantity or rate changes, unless the payload sets amount explicitly.
func HandleBOQEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		id := cast.ToString(body["id"])
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing item id")
		}

		record, err := app.FindRecordById("boq_items", id)
		if err != nil {
			log.Printf("boq_edit: could not find item %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		quantityOrRateChanged := false
		amountExplicit := false

		for field, raw := range body {
			if field == "id" || !editableItemFields[field] {
				continue
			}

			switch field {
			case "item_name", "category", "unit":
				record.Set(field, cast.ToString(raw))
			case "status":
				status := cast.ToString(raw)
				if !validItemStatuses[status] {
					return apiError(e, http.StatusBadRequest, "Invalid status")
				}
				record.Set(field, status)
			case "order_status":
				status := cast.ToString(raw)
				if !validOrderStatuses[status] {
					return apiError(e, http.StatusBadRequest, "Invalid order_status")
				}
				record.Set(field, status)
			case "amount":
				record.Set(field, cast.ToFloat64(raw))
				amountExplicit = true
			default:
				// Numeric fields arrive as JSON numbers or strings from
				// inline grid edits; cast handles both.
				value := cast.ToFloat64(raw)
				if value < 0 {
					return apiError(e, http.StatusBadRequest, "Value must not be negative")
				}
				record.Set(field, value)
				if field == "quantity" || field == "rate" {
					quantityOrRateChanged = true
				}
			}
		}

		if quantityOrRateChanged && !amountExplicit {
			record.Set("amount", record.GetFloat("quantity")*record.GetFloat("rate"))
		}

		if err := app.Save(record); err != nil {
			log.Printf("boq_edit: error saving item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update item")
		}

		return e.JSON(http.StatusOK, map[string]any{"item": itemFromRecord(record)})
	}
}
