package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type itemDef struct {
	itemName    string
	category    string
	unit        string
	quantity    float64
	orderedQty  float64
	rate        float64
	status      string
	orderStatus string
}

type receiptDef struct {
	itemName  string
	quantity  float64
	reference string
}

// Seed inserts a demo project with BOQ items and inventory receipts on first
// run. It is a no-op when any project already exists.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("projects collection: %w", err)
	}

	existing, err := app.FindAllRecords(projectsCol)
	if err == nil && len(existing) > 0 {
		return nil
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "Hillcrest Villa Interiors")
	project.Set("client", "Hillcrest Estates Pvt Ltd")
	project.Set("location", "Pune")
	project.Set("reference_number", "HCV-2026")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	items := []itemDef{
		{"Cement OPC 53 Grade", "Civil", "Bag", 400, 420, 385, "confirmed", "ordered"},
		{"River Sand", "Civil", "Cum", 60, 40, 2200, "confirmed", "ordered"},
		{"Gypsum Board 12.5mm", "False Ceiling", "Nos", 180, 180, 520, "confirmed", "received"},
		{"GI Channel 0.55mm", "False Ceiling", "Rmt", 900, 0, 45, "confirmed", "pending"},
		{"Laminate 1mm", "", "Sqft", 650, 0, 85, "draft", "pending"},
		{"Teak Wood Beading", "Carpentry", "Rmt", 120, 120, 160, "completed", "received"},
	}

	itemsCol, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		return fmt.Errorf("boq_items collection: %w", err)
	}

	for i, def := range items {
		record := core.NewRecord(itemsCol)
		record.Set("project", project.Id)
		record.Set("item_name", def.itemName)
		record.Set("category", def.category)
		record.Set("unit", def.unit)
		record.Set("quantity", def.quantity)
		record.Set("ordered_quantity", def.orderedQty)
		record.Set("rate", def.rate)
		record.Set("amount", def.quantity*def.rate)
		record.Set("status", def.status)
		record.Set("order_status", def.orderStatus)
		record.Set("sort_order", i+1)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed boq item %q: %w", def.itemName, err)
		}
	}

	receipts := []receiptDef{
		{"Cement OPC 53 Grade", 250, "DC-1042"},
		{"Cement OPC 53 Grade", 100, "DC-1057"},
		{"Gypsum Board 12.5mm", 180, "DC-1049"},
		{"Teak Wood Beading", 120, "DC-1051"},
	}

	inventoryCol, err := app.FindCollectionByNameOrId("inventory_records")
	if err != nil {
		return fmt.Errorf("inventory_records collection: %w", err)
	}

	for _, def := range receipts {
		record := core.NewRecord(inventoryCol)
		record.Set("project", project.Id)
		record.Set("item_name", def.itemName)
		record.Set("quantity", def.quantity)
		record.Set("reference", def.reference)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed inventory record %q: %w", def.itemName, err)
		}
	}

	return nil
}
