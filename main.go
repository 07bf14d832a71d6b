package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/collections"
	"sitetracker/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.BackfillOrderStatus(app); err != nil {
			log.Printf("Warning: order status backfill failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/projects/{id}", handlers.HandleProjectView(app))
		se.Router.PATCH("/api/projects/{id}", handlers.HandleProjectEdit(app))
		se.Router.DELETE("/api/projects/{id}", handlers.HandleProjectDelete(app))

		// ── BOQ items ────────────────────────────────────────────
		se.Router.GET("/api/boq", handlers.HandleBOQList(app))
		se.Router.POST("/api/boq", handlers.HandleBOQCreate(app))
		se.Router.PATCH("/api/boq", handlers.HandleBOQEdit(app))
		se.Router.PUT("/api/boq", handlers.HandleBOQBulk(app))
		se.Router.DELETE("/api/boq", handlers.HandleBOQDelete(app))

		// ── Reconciliation ───────────────────────────────────────
		se.Router.POST("/api/boq/comparison", handlers.HandleComparison(app))
		se.Router.GET("/api/projects/{projectId}/comparison/export", handlers.HandleComparisonExport(app))

		// ── Categories ───────────────────────────────────────────
		se.Router.GET("/api/projects/{id}/categories", handlers.HandleCategoriesList(app))
		se.Router.POST("/api/projects/{id}/categories", handlers.HandleCategoryAdd(app))
		se.Router.PUT("/api/projects/{id}/categories", handlers.HandleCategoriesReplace(app))

		// ── Inventory ────────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/inventory", handlers.HandleInventoryList(app))
		se.Router.POST("/api/projects/{projectId}/inventory", handlers.HandleInventoryCreate(app))
		se.Router.POST("/api/projects/{projectId}/inventory/import", handlers.HandleInventoryImport(app))

		// ── Proposal ─────────────────────────────────────────────
		se.Router.POST("/api/projects/{projectId}/proposal", handlers.HandleProposalPDF(app))

		// ── Vendors ──────────────────────────────────────────────
		se.Router.GET("/api/vendors", handlers.HandleVendorList(app))
		se.Router.POST("/api/vendors", handlers.HandleVendorCreate(app))
		se.Router.PATCH("/api/vendors/{id}", handlers.HandleVendorEdit(app))
		se.Router.DELETE("/api/vendors/{id}", handlers.HandleVendorDelete(app))

		// ── Purchase orders ──────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/po", handlers.HandlePOList(app))
		se.Router.POST("/api/projects/{projectId}/po", handlers.HandlePOCreate(app))
		se.Router.GET("/api/po/{id}", handlers.HandlePOView(app))
		se.Router.PATCH("/api/po/{id}", handlers.HandlePOEdit(app))
		se.Router.DELETE("/api/po/{id}", handlers.HandlePODelete(app))

		// ── PO line items ────────────────────────────────────────
		se.Router.POST("/api/po/{id}/line-items", handlers.HandlePOAddLineItem(app))
		se.Router.PATCH("/api/po/{id}/line-items/{itemId}", handlers.HandlePOUpdateLineItem(app))
		se.Router.DELETE("/api/po/{id}/line-items/{itemId}", handlers.HandlePODeleteLineItem(app))

		// ── Snags ────────────────────────────────────────────────
		se.Router.GET("/api/projects/{projectId}/snags", handlers.HandleSnagList(app))
		se.Router.POST("/api/projects/{projectId}/snags", handlers.HandleSnagCreate(app))
		se.Router.PATCH("/api/snags/{id}", handlers.HandleSnagEdit(app))
		se.Router.DELETE("/api/snags/{id}", handlers.HandleSnagDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
