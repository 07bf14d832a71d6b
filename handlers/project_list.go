package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// projectFromRecord flattens a projects record for the JSON API.
func projectFromRecord(r *core.Record) map[string]any {
	createdDate := ""
	if dt := r.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return map[string]any{
		"id":               r.Id,
		"name":             r.GetString("name"),
		"client":           r.GetString("client"),
		"location":         r.GetString("location"),
		"reference_number": r.GetString("reference_number"),
		"status":           r.GetString("status"),
		"created":          createdDate,
	}
}

// HandleProjectList returns a handler for GET /api/projects. Each entry
// carries its BOQ item count so the dashboard can show project cards without
// extra round trips.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		itemsCol, err := app.FindCollectionByNameOrId("boq_items")
		if err != nil {
			log.Printf("project_list: could not find boq_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		projects := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items, err := app.FindRecordsByFilter(
				itemsCol,
				"project = {:projectId}",
				"", 0, 0,
				map[string]any{"projectId": rec.Id},
			)
			if err != nil {
				items = nil
			}

			entry := projectFromRecord(rec)
			entry["item_count"] = len(items)
			projects = append(projects, entry)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"projects":    projects,
			"total_count": len(records),
		})
	}
}

// HandleProjectView returns a handler for GET /api/projects/{id}.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, map[string]any{"project": projectFromRecord(record)})
	}
}
