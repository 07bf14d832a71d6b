package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// BOQCreateRequest is the expected JSON body for POST /api/boq.
type BOQCreateRequest struct {
	ProjectID string   `json:"project_id"`
	ItemName  string   `json:"item_name"`
	Category  string   `json:"category"`
	Unit      string   `json:"unit"`
	Quantity  float64  `json:"quantity"`
	Rate      float64  `json:"rate"`
	Amount    *float64 `json:"amount"`
	Status    string   `json:"status"`
}

// Validate applies the create-form preconditions before any record is touched.
func (r BOQCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.ItemName, validation.Required),
		validation.Field(&r.Quantity, validation.Min(0.0)),
		validation.Field(&r.Rate, validation.Min(0.0)),
		validation.Field(&r.Status, validation.In(
			services.StatusDraft, services.StatusConfirmed, services.StatusCompleted,
		)),
	)
}

// HandleBOQCreate returns a handler for POST /api/boq. The amount defaults to
// quantity * rate unless the payload overrides it.
func HandleBOQCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req BOQCreateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		if _, err := app.FindRecordById("projects", req.ProjectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		itemsCol, err := app.FindCollectionByNameOrId("boq_items")
		if err != nil {
			log.Printf("boq_create: could not find boq_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		existing, _ := app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0, map[string]any{"projectId": req.ProjectID})

		status := req.Status
		if status == "" {
			status = services.StatusDraft
		}

		amount := req.Quantity * req.Rate
		if req.Amount != nil {
			amount = *req.Amount
		}

		record := core.NewRecord(itemsCol)
		record.Set("project", req.ProjectID)
		record.Set("item_name", req.ItemName)
		record.Set("category", req.Category)
		record.Set("unit", req.Unit)
		record.Set("quantity", req.Quantity)
		record.Set("ordered_quantity", 0)
		record.Set("rate", req.Rate)
		record.Set("amount", amount)
		record.Set("status", status)
		record.Set("order_status", services.OrderPending)
		record.Set("sort_order", len(existing)+1)

		if err := app.Save(record); err != nil {
			log.Printf("boq_create: error creating record: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create item")
		}

		return e.JSON(http.StatusCreated, map[string]any{"item": itemFromRecord(record)})
	}
}
