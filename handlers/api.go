// Package handlers implements the JSON API consumed by the project dashboard.
package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// apiError writes a JSON error envelope. Errors are local to the action; the
// client renders them inline and keeps its prior state.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// itemFromRecord converts a boq_items record into the engine's item type.
// This is the single normalization point: GetFloat/GetString already coerce
// missing values to their zero value.
func itemFromRecord(r *core.Record) services.BOQItem {
	return services.BOQItem{
		ID:              r.Id,
		ProjectID:       r.GetString("project"),
		Category:        r.GetString("category"),
		ItemName:        r.GetString("item_name"),
		Unit:            r.GetString("unit"),
		Quantity:        r.GetFloat("quantity"),
		OrderedQuantity: r.GetFloat("ordered_quantity"),
		Rate:            r.GetFloat("rate"),
		Amount:          r.GetFloat("amount"),
		Status:          r.GetString("status"),
		OrderStatus:     r.GetString("order_status"),
	}
}

// loadProjectItems fetches a project's BOQ items in grid order.
func loadProjectItems(app *pocketbase.PocketBase, projectID string) ([]services.BOQItem, error) {
	itemsCol, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		return nil, fmt.Errorf("boq_items collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0, map[string]any{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("query boq items: %w", err)
	}

	items := make([]services.BOQItem, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return items, nil
}

// loadProjectInventory fetches a project's stored receipts as engine records.
func loadProjectInventory(app *pocketbase.PocketBase, projectID string) ([]services.InventoryRecord, error) {
	col, err := app.FindCollectionByNameOrId("inventory_records")
	if err != nil {
		return nil, fmt.Errorf("inventory_records collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "project = {:projectId}", "created", 0, 0, map[string]any{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("query inventory records: %w", err)
	}

	out := make([]services.InventoryRecord, 0, len(records))
	for _, r := range records {
		out = append(out, services.InventoryRecord{
			ItemName: r.GetString("item_name"),
			Quantity: r.GetFloat("quantity"),
		})
	}
	return out, nil
}
