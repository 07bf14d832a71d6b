package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

// getNextLineSortOrder returns the next sort_order for a PO's line items.
func getNextLineSortOrder(app *pocketbase.PocketBase, poID string) int {
	existing, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:poId}",
		"-sort_order",
		1,
		0,
		map[string]any{"poId": poID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// POLineItemRequest is the body for POST /api/po/{id}/line-items. When
// BOQItemID is set, description, unit, qty and rate default from that item;
// explicit values in the payload still win.
type POLineItemRequest struct {
	BOQItemID   string  `json:"boq_item_id"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
	GSTPercent  float64 `json:"gst_percent"`
}

func (r POLineItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.When(r.BOQItemID == "", validation.Required)),
		validation.Field(&r.Qty, validation.Min(0.0)),
		validation.Field(&r.Rate, validation.Min(0.0)),
		validation.Field(&r.GSTPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}

// HandlePOAddLineItem returns a handler for POST /api/po/{id}/line-items.
// Adding a line linked to a BOQ item re-syncs that item's ordered quantity.
func HandlePOAddLineItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		if poID == "" {
			return apiError(e, http.StatusBadRequest, "Missing purchase order id")
		}

		po, err := app.FindRecordById("purchase_orders", poID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Purchase order not found")
		}

		var req POLineItemRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		description := req.Description
		unit := req.Unit
		qty := req.Qty
		rate := req.Rate

		if req.BOQItemID != "" {
			boqItem, err := app.FindRecordById("boq_items", req.BOQItemID)
			if err != nil {
				return apiError(e, http.StatusNotFound, "BOQ item not found")
			}
			if boqItem.GetString("project") != po.GetString("project") {
				return apiError(e, http.StatusBadRequest, "BOQ item belongs to another project")
			}
			if description == "" {
				description = boqItem.GetString("item_name")
			}
			if unit == "" {
				unit = boqItem.GetString("unit")
			}
			if qty == 0 {
				qty = boqItem.GetFloat("quantity")
			}
			if rate == 0 {
				rate = boqItem.GetFloat("rate")
			}
		}

		if qty <= 0 {
			return apiError(e, http.StatusBadRequest, "Quantity must be greater than zero")
		}

		col, err := app.FindCollectionByNameOrId("po_line_items")
		if err != nil {
			log.Printf("po_line_items: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("purchase_order", poID)
		record.Set("boq_item", req.BOQItemID)
		record.Set("description", description)
		record.Set("unit", unit)
		record.Set("qty", qty)
		record.Set("rate", rate)
		record.Set("gst_percent", req.GSTPercent)
		record.Set("sort_order", getNextLineSortOrder(app, poID))

		if err := app.Save(record); err != nil {
			log.Printf("po_line_items: could not save line item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to add line item")
		}

		if req.BOQItemID != "" {
			if err := syncOrderedQuantity(app, req.BOQItemID); err != nil {
				log.Printf("po_line_items: %v", err)
			}
		}

		return e.JSON(http.StatusCreated, map[string]any{"line_item": lineItemFromRecord(record)})
	}
}

// HandlePOUpdateLineItem returns a handler for PATCH /api/po/{id}/line-items/{itemId}.
func HandlePOUpdateLineItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		line, err := app.FindRecordById("po_line_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}
		if line.GetString("purchase_order") != poID {
			return apiError(e, http.StatusForbidden, "Line item does not belong to this purchase order")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		for field, raw := range body {
			switch field {
			case "description", "unit":
				if v := cast.ToString(raw); v != "" {
					line.Set(field, v)
				}
			case "qty", "rate", "gst_percent":
				v := cast.ToFloat64(raw)
				if v < 0 {
					return apiError(e, http.StatusBadRequest, "Value must not be negative")
				}
				line.Set(field, v)
			}
		}

		if line.GetFloat("qty") <= 0 {
			return apiError(e, http.StatusBadRequest, "Quantity must be greater than zero")
		}

		if err := app.Save(line); err != nil {
			log.Printf("po_line_items: could not save line item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update line item")
		}

		if boqItemID := line.GetString("boq_item"); boqItemID != "" {
			if err := syncOrderedQuantity(app, boqItemID); err != nil {
				log.Printf("po_line_items: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"line_item": lineItemFromRecord(line)})
	}
}

// HandlePODeleteLineItem returns a handler for DELETE /api/po/{id}/line-items/{itemId}.
func HandlePODeleteLineItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		line, err := app.FindRecordById("po_line_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}
		if line.GetString("purchase_order") != poID {
			return apiError(e, http.StatusForbidden, "Line item does not belong to this purchase order")
		}

		boqItemID := line.GetString("boq_item")

		if err := app.Delete(line); err != nil {
			log.Printf("po_line_items: could not delete line item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete line item")
		}

		if boqItemID != "" {
			if err := syncOrderedQuantity(app, boqItemID); err != nil {
				log.Printf("po_line_items: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}
