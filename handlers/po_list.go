package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

func poFromRecord(r *core.Record) map[string]any {
	return map[string]any{
		"id":         r.Id,
		"project_id": r.GetString("project"),
		"vendor_id":  r.GetString("vendor"),
		"po_number":  r.GetString("po_number"),
		"status":     r.GetString("status"),
		"notes":      r.GetString("notes"),
		"created":    r.GetString("created"),
	}
}

func lineItemFromRecord(r *core.Record) map[string]any {
	calc := services.CalcProposalLine(r.GetFloat("rate"), r.GetFloat("qty"), r.GetFloat("gst_percent"))
	return map[string]any{
		"id":          r.Id,
		"boq_item":    r.GetString("boq_item"),
		"description": r.GetString("description"),
		"unit":        r.GetString("unit"),
		"qty":         r.GetFloat("qty"),
		"rate":        r.GetFloat("rate"),
		"gst_percent": r.GetFloat("gst_percent"),
		"before_gst":  calc.BeforeGST,
		"gst_amount":  calc.GSTAmount,
		"total":       calc.Total,
	}
}

// HandlePOList returns a handler for GET /api/projects/{projectId}/po.
func HandlePOList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"purchase_orders",
			"project = {:projectId}",
			"-created", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("po_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		orders := make([]map[string]any, 0, len(records))
		for _, r := range records {
			entry := poFromRecord(r)
			if vendorID := r.GetString("vendor"); vendorID != "" {
				if vendor, err := app.FindRecordById("vendors", vendorID); err == nil {
					entry["vendor_name"] = vendor.GetString("name")
				}
			}
			orders = append(orders, entry)
		}

		return e.JSON(http.StatusOK, map[string]any{"purchase_orders": orders})
	}
}

// HandlePOView returns a handler for GET /api/po/{id}. The response includes
// the line items with their computed GST totals.
func HandlePOView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing purchase order id")
		}

		record, err := app.FindRecordById("purchase_orders", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Purchase order not found")
		}

		lines, err := app.FindRecordsByFilter(
			"po_line_items",
			"purchase_order = {:poId}",
			"sort_order", 0, 0,
			map[string]any{"poId": id},
		)
		if err != nil {
			log.Printf("po_view: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		var calcs []services.ProposalLineCalc
		lineItems := make([]map[string]any, 0, len(lines))
		for _, line := range lines {
			calcs = append(calcs, services.CalcProposalLine(
				line.GetFloat("rate"), line.GetFloat("qty"), line.GetFloat("gst_percent")))
			lineItems = append(lineItems, lineItemFromRecord(line))
		}
		totals := services.CalcProposalTotals(calcs)

		return e.JSON(http.StatusOK, map[string]any{
			"purchase_order": poFromRecord(record),
			"line_items":     lineItems,
			"totals": map[string]any{
				"before_tax":  totals.TotalBeforeTax,
				"gst_amount":  totals.GSTAmount,
				"round_off":   totals.RoundOff,
				"grand_total": totals.GrandTotal,
			},
		})
	}
}
