// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client", "Test Client")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestBOQItem creates a BOQ item with sensible defaults. The amount is
// derived from quantity and rate, matching the create handler.
func CreateTestBOQItem(t *testing.T, app *pocketbase.PocketBase, projectID, itemName, category string, quantity, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		t.Fatalf("failed to find boq_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("item_name", itemName)
	record.Set("category", category)
	record.Set("unit", "Nos")
	record.Set("quantity", quantity)
	record.Set("ordered_quantity", 0)
	record.Set("rate", rate)
	record.Set("amount", quantity*rate)
	record.Set("status", "draft")
	record.Set("order_status", "pending")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ item: %v", err)
	}

	return record
}

// CreateTestInventoryRecord creates a received-stock entry for a project.
func CreateTestInventoryRecord(t *testing.T, app *pocketbase.PocketBase, projectID, itemName string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inventory_records")
	if err != nil {
		t.Fatalf("failed to find inventory_records collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("item_name", itemName)
	record.Set("quantity", quantity)
	record.Set("reference", "DC-TEST")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test inventory record: %v", err)
	}

	return record
}

// CreateTestVendor creates a vendor record with the given name and returns it.
func CreateTestVendor(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		t.Fatalf("failed to find vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("city", "Mumbai")
	record.Set("gstin", "27AADCB2230M1ZV")
	record.Set("contact_name", "Test Contact")
	record.Set("phone", "9876543210")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test vendor: %v", err)
	}

	return record
}

// CreateTestPurchaseOrder creates a PO record linked to a project and vendor.
func CreateTestPurchaseOrder(t *testing.T, app *pocketbase.PocketBase, projectID, vendorID, poNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("purchase_orders")
	if err != nil {
		t.Fatalf("failed to find purchase_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("vendor", vendorID)
	record.Set("po_number", poNumber)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test PO: %v", err)
	}

	return record
}

// CreateTestPOLineItem creates a PO line item, optionally linked to a BOQ item.
func CreateTestPOLineItem(t *testing.T, app *pocketbase.PocketBase, poID, boqItemID, description string, qty, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("po_line_items")
	if err != nil {
		t.Fatalf("failed to find po_line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("purchase_order", poID)
	record.Set("boq_item", boqItemID)
	record.Set("description", description)
	record.Set("unit", "Nos")
	record.Set("qty", qty)
	record.Set("rate", rate)
	record.Set("gst_percent", 18.0)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test PO line item: %v", err)
	}

	return record
}

// CreateTestSnag creates a snag record for a project.
func CreateTestSnag(t *testing.T, app *pocketbase.PocketBase, projectID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("snags")
	if err != nil {
		t.Fatalf("failed to find snags collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("title", title)
	record.Set("severity", "medium")
	record.Set("status", "open")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test snag: %v", err)
	}

	return record
}
