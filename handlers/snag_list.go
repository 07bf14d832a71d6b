package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func snagFromRecord(r *core.Record) map[string]any {
	return map[string]any{
		"id":          r.Id,
		"project_id":  r.GetString("project"),
		"title":       r.GetString("title"),
		"description": r.GetString("description"),
		"location":    r.GetString("location"),
		"severity":    r.GetString("severity"),
		"status":      r.GetString("status"),
		"created":     r.GetString("created"),
	}
}

// HandleSnagList returns a handler for GET /api/projects/{projectId}/snags.
// An optional ?status= query narrows the list.
func HandleSnagList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("snags")
		if err != nil {
			log.Printf("snag_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		filter := "project = {:projectId}"
		params := map[string]any{"projectId": projectID}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter(col, filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("snag_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		snags := make([]map[string]any, 0, len(records))
		openCount := 0
		for _, r := range records {
			if s := r.GetString("status"); s == "open" || s == "in_progress" {
				openCount++
			}
			snags = append(snags, snagFromRecord(r))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"snags":      snags,
			"open_count": openCount,
		})
	}
}
