package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitetracker/testhelpers"
)

func TestHandleBOQDelete_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Delete Item Project")
	item := testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)

	handler := HandleBOQDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/boq?id="+item.Id, nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("boq_items", item.Id); err == nil {
		t.Error("item should have been deleted")
	}
}

func TestHandleBOQDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBOQDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/boq?id=missing", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleBOQDelete_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBOQDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/boq", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
