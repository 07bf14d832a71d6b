package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// CategoriesUpdateRequest is the body for PUT /api/projects/{id}/categories.
type CategoriesUpdateRequest struct {
	Categories []string `json:"categories"`
}

// CategoryAddRequest is the body for POST /api/projects/{id}/categories.
type CategoryAddRequest struct {
	Category string `json:"category"`
}

// HandleCategoriesList returns a handler for GET /api/projects/{id}/categories.
// The response is the union of categories present on the project's items and
// the stored custom list, item categories first.
func HandleCategoriesList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		items, err := loadProjectItems(app, projectID)
		if err != nil {
			log.Printf("categories_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		cache := services.NewCategoryCache(&services.RecordCategoryStore{App: app})
		merged, err := cache.Merge(projectID, services.ItemCategories(items))
		if err != nil {
			log.Printf("categories_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"categories": merged})
	}
}

// HandleCategoryAdd returns a handler for POST /api/projects/{id}/categories.
func HandleCategoryAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req CategoryAddRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		cache := services.NewCategoryCache(&services.RecordCategoryStore{App: app})
		custom, err := cache.Add(projectID, req.Category)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{"categories": custom})
	}
}

// HandleCategoriesReplace returns a handler for PUT /api/projects/{id}/categories.
// It overwrites the stored custom list; categories already on items are
// unaffected because reads always merge.
func HandleCategoriesReplace(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req CategoriesUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		cache := services.NewCategoryCache(&services.RecordCategoryStore{App: app})
		custom, err := cache.Replace(projectID, req.Categories)
		if err != nil {
			log.Printf("categories_replace: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"categories": custom})
	}
}
