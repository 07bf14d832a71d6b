package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// syncOrderedQuantity recalculates a BOQ item's ordered_quantity from the
// line items of all non-cancelled purchase orders that reference it, then
// nudges order_status between pending and ordered. Received and cancelled
// items keep their status; those transitions are explicit.
func syncOrderedQuantity(app *pocketbase.PocketBase, boqItemID string) error {
	item, err := app.FindRecordById("boq_items", boqItemID)
	if err != nil {
		return fmt.Errorf("boq item %s: %w", boqItemID, err)
	}

	lines, err := app.FindRecordsByFilter(
		"po_line_items",
		"boq_item = {:itemId}",
		"", 0, 0,
		map[string]any{"itemId": boqItemID},
	)
	if err != nil {
		lines = nil
	}

	var total float64
	for _, line := range lines {
		po, err := app.FindRecordById("purchase_orders", line.GetString("purchase_order"))
		if err != nil {
			continue
		}
		if po.GetString("status") == "cancelled" {
			continue
		}
		total += line.GetFloat("qty")
	}

	item.Set("ordered_quantity", total)

	switch item.GetString("order_status") {
	case services.OrderPending:
		if total > 0 {
			item.Set("order_status", services.OrderOrdered)
		}
	case services.OrderOrdered:
		if total == 0 {
			item.Set("order_status", services.OrderPending)
		}
	}

	if err := app.Save(item); err != nil {
		return fmt.Errorf("save boq item %s: %w", boqItemID, err)
	}
	return nil
}

// syncLinkedItems re-syncs every BOQ item referenced by a purchase order's
// line items. Used after PO-level changes (status flips, deletes).
func syncLinkedItems(app *pocketbase.PocketBase, poID string) {
	lines, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:poId}",
		"", 0, 0,
		map[string]any{"poId": poID},
	)
	if err != nil {
		return
	}

	seen := make(map[string]bool)
	for _, line := range lines {
		boqItemID := line.GetString("boq_item")
		if boqItemID == "" || seen[boqItemID] {
			continue
		}
		seen[boqItemID] = true
		if err := syncOrderedQuantity(app, boqItemID); err != nil {
			log.Printf("po_sync: %v", err)
		}
	}
}

// recordPOReceipt books a received purchase order into the project's
// inventory: each line linked to a BOQ item flips that item to received and
// lands as an inventory receipt under the PO number, so the reconciliation
// picks the delivery up without a manual entry.
func recordPOReceipt(app *pocketbase.PocketBase, po *core.Record) error {
	lines, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:poId}",
		"sort_order", 0, 0,
		map[string]any{"poId": po.Id},
	)
	if err != nil {
		return fmt.Errorf("query line items: %w", err)
	}

	invCol, err := app.FindCollectionByNameOrId("inventory_records")
	if err != nil {
		return fmt.Errorf("inventory_records collection: %w", err)
	}

	for _, line := range lines {
		boqItemID := line.GetString("boq_item")
		if boqItemID == "" {
			continue
		}

		item, err := app.FindRecordById("boq_items", boqItemID)
		if err != nil {
			log.Printf("po_sync: receipt: boq item %s not found, skipping: %v", boqItemID, err)
			continue
		}

		item.Set("order_status", services.OrderReceived)
		if err := app.Save(item); err != nil {
			log.Printf("po_sync: receipt: save boq item %s: %v", boqItemID, err)
			continue
		}

		receipt := core.NewRecord(invCol)
		receipt.Set("project", po.GetString("project"))
		receipt.Set("item_name", item.GetString("item_name"))
		receipt.Set("quantity", line.GetFloat("qty"))
		receipt.Set("reference", po.GetString("po_number"))
		if err := app.Save(receipt); err != nil {
			log.Printf("po_sync: receipt: save inventory record: %v", err)
		}
	}

	return nil
}
