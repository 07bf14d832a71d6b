package collections_test

import (
	"testing"

	"sitetracker/collections"
	"sitetracker/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify project was created
	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		t.Fatalf("query projects error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].GetString("name") != "Hillcrest Villa Interiors" {
		t.Errorf("project name = %q, want %q", projects[0].GetString("name"), "Hillcrest Villa Interiors")
	}

	// Verify 6 BOQ items linked to the project
	itemsCol, _ := app.FindCollectionByNameOrId("boq_items")
	items, _ := app.FindAllRecords(itemsCol)
	if len(items) != 6 {
		t.Fatalf("expected 6 BOQ items, got %d", len(items))
	}
	for _, item := range items {
		if item.GetString("project") != projects[0].Id {
			t.Errorf("item %q not linked to seed project", item.GetString("item_name"))
		}
	}

	// Verify 4 inventory receipts
	inventoryCol, _ := app.FindCollectionByNameOrId("inventory_records")
	receipts, _ := app.FindAllRecords(inventoryCol)
	if len(receipts) != 4 {
		t.Errorf("expected 4 inventory receipts, got %d", len(receipts))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 1 {
		t.Errorf("expected 1 project after idempotent seed, got %d", len(projects))
	}

	itemsCol, _ := app.FindCollectionByNameOrId("boq_items")
	items, _ := app.FindAllRecords(itemsCol)
	if len(items) != 6 {
		t.Errorf("expected 6 BOQ items after idempotent seed, got %d", len(items))
	}
}

func TestSeed_ItemDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	itemsCol, _ := app.FindCollectionByNameOrId("boq_items")
	items, _ := app.FindRecordsByFilter(
		itemsCol,
		"item_name = {:n}",
		"", 1, 0,
		map[string]any{"n": "Cement OPC 53 Grade"},
	)
	if len(items) == 0 {
		t.Fatal("cement seed item not found")
	}

	item := items[0]
	if item.GetFloat("quantity") != 400 {
		t.Errorf("quantity = %v, want 400", item.GetFloat("quantity"))
	}
	if item.GetFloat("ordered_quantity") != 420 {
		t.Errorf("ordered_quantity = %v, want 420", item.GetFloat("ordered_quantity"))
	}
	if item.GetFloat("amount") != 400*385 {
		t.Errorf("amount = %v, want %v", item.GetFloat("amount"), 400*385)
	}
	if item.GetString("order_status") != "ordered" {
		t.Errorf("order_status = %q, want ordered", item.GetString("order_status"))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a project first (not via Seed)
	testhelpers.CreateTestProject(t, app, "Existing Project")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 1 {
		t.Errorf("expected 1 project (pre-existing only), got %d", len(projects))
	}
	if projects[0].GetString("name") != "Existing Project" {
		t.Errorf("expected pre-existing project, got %q", projects[0].GetString("name"))
	}
}
