package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sitetracker/testhelpers"
)

func TestHandleComparisonExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Export Project")
	testhelpers.CreateTestBOQItem(t, app, project.Id, "Cement", "Civil", 100, 450)
	testhelpers.CreateTestInventoryRecord(t, app, project.Id, "cement", 40)

	handler := HandleComparisonExport(app)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.Id+"/comparison/export", nil)
	req.SetPathValue("projectId", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ct := rec.Header().Get("Content-Type")
	if !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("expected Excel content type, got %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".xlsx") {
		t.Errorf("unexpected disposition %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty body")
	}
}

func TestHandleComparisonExport_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleComparisonExport(app)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/missing/comparison/export", nil)
	req.SetPathValue("projectId", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
