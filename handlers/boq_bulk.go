package handlers

import (
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// Bulk actions accepted by PUT /api/boq.
const (
	BulkUpdateCategory = "update_category"
	BulkUpdateStatus   = "update_status"
)

// BOQBulkRequest is the expected JSON body for PUT /api/boq.
type BOQBulkRequest struct {
	Action    string   `json:"action"`
	ProjectID string   `json:"project_id"`
	ItemIDs   []string `json:"item_ids"`
	Category  string   `json:"category"`
	Status    string   `json:"status"`
}

// Validate checks the action shape. Only the workflow status axis may be set
// in bulk; order_status is owned by the procurement handlers.
func (r BOQBulkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Action, validation.Required, validation.In(BulkUpdateCategory, BulkUpdateStatus)),
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.ItemIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&r.Status, validation.When(r.Action == BulkUpdateStatus,
			validation.Required,
			validation.In(services.StatusDraft, services.StatusConfirmed, services.StatusCompleted),
		)),
	)
}

// HandleBOQBulk returns a handler for PUT /api/boq. It reassigns the category
// or transitions the workflow status across the selected item set. Items that
// no longer exist or belong to another project are skipped, not failed.
func HandleBOQBulk(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req BOQBulkRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		updated := 0
		for _, id := range req.ItemIDs {
			record, err := app.FindRecordById("boq_items", id)
			if err != nil {
				log.Printf("boq_bulk: item %s not found, skipping: %v", id, err)
				continue
			}
			if record.GetString("project") != req.ProjectID {
				log.Printf("boq_bulk: item %s belongs to another project, skipping", id)
				continue
			}

			switch req.Action {
			case BulkUpdateCategory:
				record.Set("category", req.Category)
			case BulkUpdateStatus:
				record.Set("status", req.Status)
			}

			if err := app.Save(record); err != nil {
				log.Printf("boq_bulk: error saving item %s: %v", id, err)
				continue
			}
			updated++
		}

		return e.JSON(http.StatusOK, map[string]any{"updated": updated})
	}
}
