package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sitetracker/services"
	"sitetracker/testhelpers"
)

func TestHandlePOCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Create Project")
	project.Set("reference_number", "HV")
	if err := app.Save(project); err != nil {
		t.Fatalf("save: %v", err)
	}
	vendor := testhelpers.CreateTestVendor(t, app, "Sharma Steel")

	handler := HandlePOCreate(app)

	body := `{"vendor_id":"` + vendor.Id + `","notes":"Deliver to site gate 2"}`
	req := newJSONRequest(http.MethodPost, "/api/projects/"+project.Id+"/po", body)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON(t, rec)
	po := resp["purchase_order"].(map[string]any)
	wantNumber := fmt.Sprintf("ST-PO-HV-%s-001", services.FiscalYear(time.Now()))
	if po["po_number"] != wantNumber {
		t.Errorf("po_number = %v, want %v", po["po_number"], wantNumber)
	}
	if po["status"] != "draft" {
		t.Errorf("status = %v, want draft", po["status"])
	}
	if po["notes"] != "Deliver to site gate 2" {
		t.Errorf("notes = %v", po["notes"])
	}
}

func TestHandlePOCreate_SequenceIncrements(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Sequence Project")
	project.Set("reference_number", "SQ")
	if err := app.Save(project); err != nil {
		t.Fatalf("save: %v", err)
	}
	vendor := testhelpers.CreateTestVendor(t, app, "Sequence Vendor")

	handler := HandlePOCreate(app)

	var lastNumber string
	for i := 0; i < 2; i++ {
		req := newJSONRequest(http.MethodPost, "/api/projects/"+project.Id+"/po",
			`{"vendor_id":"`+vendor.Id+`"}`)
		req.SetPathValue("projectId", project.Id)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		resp := decodeJSON(t, rec)
		lastNumber = resp["purchase_order"].(map[string]any)["po_number"].(string)
	}

	wantNumber := fmt.Sprintf("ST-PO-SQ-%s-002", services.FiscalYear(time.Now()))
	if lastNumber != wantNumber {
		t.Errorf("second po_number = %v, want %v", lastNumber, wantNumber)
	}
}

func TestHandlePOCreate_VendorNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO No Vendor Project")

	handler := HandlePOCreate(app)

	req := newJSONRequest(http.MethodPost, "/api/projects/"+project.Id+"/po", `{"vendor_id":"missing"}`)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandlePOList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO List Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Listed Vendor")
	testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-A-25-26-001")
	testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-A-25-26-002")

	handler := HandlePOList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.Id+"/po", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec)
	orders := resp["purchase_orders"].([]any)
	if len(orders) != 2 {
		t.Fatalf("expected 2 purchase orders, got %d", len(orders))
	}
	first := orders[0].(map[string]any)
	if first["vendor_name"] != "Listed Vendor" {
		t.Errorf("vendor_name = %v, want Listed Vendor", first["vendor_name"])
	}
}

func TestHandlePOView_Totals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO View Project")
	vendor := testhelpers.CreateTestVendor(t, app, "View Vendor")
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-V-25-26-001")
	testhelpers.CreateTestPOLineItem(t, app, po.Id, "", "Cement OPC 53", 100, 10)
	testhelpers.CreateTestPOLineItem(t, app, po.Id, "", "Steel Rod", 100, 10)

	handler := HandlePOView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/po/"+po.Id, nil)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeJSON(t, rec)
	lines := resp["line_items"].([]any)
	if len(lines) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(lines))
	}

	// 2 lines of 100 x 10 at 18% GST: 2000 before tax, 360 GST, 2360 total.
	totals := resp["totals"].(map[string]any)
	if totals["before_tax"].(float64) != 2000 {
		t.Errorf("before_tax = %v, want 2000", totals["before_tax"])
	}
	if totals["gst_amount"].(float64) != 360 {
		t.Errorf("gst_amount = %v, want 360", totals["gst_amount"])
	}
	if totals["grand_total"].(float64) != 2360 {
		t.Errorf("grand_total = %v, want 2360", totals["grand_total"])
	}
}

func TestHandlePOAddLineItem_BOQDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Defaults Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Line Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement OPC 53", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-L-25-26-001")

	handler := HandlePOAddLineItem(app)

	body := `{"boq_item_id":"` + item.Id + `","gst_percent":18}`
	req := newJSONRequest(http.MethodPost, "/api/po/"+po.Id+"/line-items", body)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON(t, rec)
	line := resp["line_item"].(map[string]any)
	if line["description"] != "Cement OPC 53" {
		t.Errorf("description = %v, want item name", line["description"])
	}
	if line["qty"].(float64) != 100 {
		t.Errorf("qty = %v, want 100 from BOQ item", line["qty"])
	}
	if line["rate"].(float64) != 450 {
		t.Errorf("rate = %v, want 450 from BOQ item", line["rate"])
	}

	// The linked item's ordered quantity was synced and its order status flipped.
	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetFloat("ordered_quantity") != 100 {
		t.Errorf("ordered_quantity = %v, want 100", record.GetFloat("ordered_quantity"))
	}
	if record.GetString("order_status") != "ordered" {
		t.Errorf("order_status = %q, want ordered", record.GetString("order_status"))
	}
}

func TestHandlePOAddLineItem_ForeignBOQItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Own Project")
	other := testhelpers.CreateTestProject(t, app, "Line Other Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Foreign Vendor")
	theirs := testhelpers.CreateTestBOQItem(t, app, other.Id, "Steel", "Civil", 500, 65)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-F-25-26-001")

	handler := HandlePOAddLineItem(app)

	req := newJSONRequest(http.MethodPost, "/api/po/"+po.Id+"/line-items",
		`{"boq_item_id":"`+theirs.Id+`"}`)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePOAddLineItem_FreeTextRequiresDescription(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Free Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Free Vendor")
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-FR-25-26-001")

	handler := HandlePOAddLineItem(app)

	req := newJSONRequest(http.MethodPost, "/api/po/"+po.Id+"/line-items", `{"qty":10,"rate":50}`)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePOUpdateLineItem_ResyncsOrderedQuantity(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Update Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Update Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-U-25-26-001")
	line := testhelpers.CreateTestPOLineItem(t, app, po.Id, item.Id, "Cement", 60, 450)

	if err := syncOrderedQuantity(app, item.Id); err != nil {
		t.Fatalf("sync: %v", err)
	}

	handler := HandlePOUpdateLineItem(app)

	req := newJSONRequest(http.MethodPatch, "/api/po/"+po.Id+"/line-items/"+line.Id, `{"qty":80}`)
	req.SetPathValue("id", po.Id)
	req.SetPathValue("itemId", line.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetFloat("ordered_quantity") != 80 {
		t.Errorf("ordered_quantity = %v, want 80", record.GetFloat("ordered_quantity"))
	}
}

func TestHandlePOUpdateLineItem_WrongPO(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Wrong PO Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Wrong Vendor")
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-W-25-26-001")
	otherPO := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-W-25-26-002")
	line := testhelpers.CreateTestPOLineItem(t, app, po.Id, "", "Cement", 60, 450)

	handler := HandlePOUpdateLineItem(app)

	req := newJSONRequest(http.MethodPatch, "/api/po/"+otherPO.Id+"/line-items/"+line.Id, `{"qty":80}`)
	req.SetPathValue("id", otherPO.Id)
	req.SetPathValue("itemId", line.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHandlePODeleteLineItem_ResetsOrderStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Line Delete Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Delete Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-D-25-26-001")
	line := testhelpers.CreateTestPOLineItem(t, app, po.Id, item.Id, "Cement", 60, 450)

	if err := syncOrderedQuantity(app, item.Id); err != nil {
		t.Fatalf("sync: %v", err)
	}
	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetString("order_status") != "ordered" {
		t.Fatalf("precondition: order_status = %q, want ordered", record.GetString("order_status"))
	}

	handler := HandlePODeleteLineItem(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/po/"+po.Id+"/line-items/"+line.Id, nil)
	req.SetPathValue("id", po.Id)
	req.SetPathValue("itemId", line.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	record, _ = app.FindRecordById("boq_items", item.Id)
	if record.GetFloat("ordered_quantity") != 0 {
		t.Errorf("ordered_quantity = %v, want 0", record.GetFloat("ordered_quantity"))
	}
	if record.GetString("order_status") != "pending" {
		t.Errorf("order_status = %q, want pending", record.GetString("order_status"))
	}
}

func TestHandlePOEdit_StatusTransitions(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Transition Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Transition Vendor")

	handler := HandlePOEdit(app)

	tests := []struct {
		name     string
		from     string
		to       string
		wantCode int
	}{
		{"draft to issued", "draft", "issued", http.StatusOK},
		{"draft to cancelled", "draft", "cancelled", http.StatusOK},
		{"draft to received", "draft", "received", http.StatusBadRequest},
		{"issued to received", "issued", "received", http.StatusOK},
		{"received is terminal", "received", "cancelled", http.StatusBadRequest},
		{"cancelled is terminal", "cancelled", "issued", http.StatusBadRequest},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id,
				fmt.Sprintf("ST-PO-T-25-26-%03d", i+1))
			po.Set("status", tt.from)
			if err := app.Save(po); err != nil {
				t.Fatalf("save: %v", err)
			}

			req := newJSONRequest(http.MethodPatch, "/api/po/"+po.Id, `{"status":"`+tt.to+`"}`)
			req.SetPathValue("id", po.Id)
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandlePOEdit_ReceivedBooksInventory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Receipt Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Receipt Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement OPC 53", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-R-25-26-001")
	po.Set("status", "issued")
	if err := app.Save(po); err != nil {
		t.Fatalf("save: %v", err)
	}
	testhelpers.CreateTestPOLineItem(t, app, po.Id, item.Id, "Cement OPC 53", 60, 450)

	handler := HandlePOEdit(app)

	req := newJSONRequest(http.MethodPatch, "/api/po/"+po.Id, `{"status":"received"}`)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetString("order_status") != "received" {
		t.Errorf("order_status = %q, want received", record.GetString("order_status"))
	}

	receipts, err := app.FindRecordsByFilter(
		"inventory_records",
		"project = {:p} && reference = {:ref}",
		"", 0, 0,
		map[string]any{"p": project.Id, "ref": "ST-PO-R-25-26-001"},
	)
	if err != nil {
		t.Fatalf("query receipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected 1 booked receipt, got %d", len(receipts))
	}
	if receipts[0].GetString("item_name") != "Cement OPC 53" {
		t.Errorf("receipt item_name = %q", receipts[0].GetString("item_name"))
	}
	if receipts[0].GetFloat("quantity") != 60 {
		t.Errorf("receipt quantity = %v, want 60", receipts[0].GetFloat("quantity"))
	}
}

func TestHandlePOEdit_CancelledReleasesOrderedQuantity(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Cancel Project")
	vendor := testhelpers.CreateTestVendor(t, app, "Cancel Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-C-25-26-001")
	testhelpers.CreateTestPOLineItem(t, app, po.Id, item.Id, "Cement", 60, 450)
	if err := syncOrderedQuantity(app, item.Id); err != nil {
		t.Fatalf("sync: %v", err)
	}

	handler := HandlePOEdit(app)

	req := newJSONRequest(http.MethodPatch, "/api/po/"+po.Id, `{"status":"cancelled"}`)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetFloat("ordered_quantity") != 0 {
		t.Errorf("ordered_quantity = %v, want 0 after cancellation", record.GetFloat("ordered_quantity"))
	}
	if record.GetString("order_status") != "pending" {
		t.Errorf("order_status = %q, want pending", record.GetString("order_status"))
	}
}

func TestHandlePODelete_ResyncsLinkedItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "PO Delete Project")
	vendor := testhelpers.CreateTestVendor(t, app, "PO Delete Vendor")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)
	po := testhelpers.CreateTestPurchaseOrder(t, app, project.Id, vendor.Id, "ST-PO-X-25-26-001")
	line := testhelpers.CreateTestPOLineItem(t, app, po.Id, item.Id, "Cement", 60, 450)
	if err := syncOrderedQuantity(app, item.Id); err != nil {
		t.Fatalf("sync: %v", err)
	}

	handler := HandlePODelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/po/"+po.Id, nil)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("po_line_items", line.Id); err == nil {
		t.Error("line items should cascade with the purchase order")
	}

	record, _ := app.FindRecordById("boq_items", item.Id)
	if record.GetFloat("ordered_quantity") != 0 {
		t.Errorf("ordered_quantity = %v, want 0 after delete", record.GetFloat("ordered_quantity"))
	}
	if record.GetString("order_status") != "pending" {
		t.Errorf("order_status = %q, want pending", record.GetString("order_status"))
	}
}
