package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/testhelpers"
)

func createTestSubmission(t *testing.T, app *pocketbase.PocketBase, surveyID, target string, ok bool, detail string) {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("submissions")
	if err != nil {
		t.Fatalf("submissions collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("survey", surveyID)
	record.Set("target", target)
	record.Set("ok", ok)
	record.Set("detail", detail)
	if err := app.Save(record); err != nil {
		t.Fatalf("save submission: %v", err)
	}
}

func TestHandleSubmissionList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	other := testhelpers.CreateTestSurvey(t, app, "Alex", "7 Low Rd")

	createTestSubmission(t, app, survey.Id, "dashboard", true, "")
	createTestSubmission(t, app, survey.Id, "docstore", false, "PUT failed: 502")
	createTestSubmission(t, app, other.Id, "dashboard", true, "")

	handler := HandleSubmissionList(app)
	req := httptest.NewRequest(http.MethodGet, "/surveys/x/submissions", nil)
	req.SetPathValue("id", survey.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var entries []struct {
		ID     string `json:"id"`
		Target string `json:"target"`
		OK     bool   `json:"ok"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (other survey excluded)", len(entries))
	}
	for _, entry := range entries {
		if entry.Target == "docstore" && (entry.OK || entry.Detail != "PUT failed: 502") {
			t.Errorf("docstore entry = %+v", entry)
		}
	}
}

func TestHandleSubmissionList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")

	handler := HandleSubmissionList(app)
	req := httptest.NewRequest(http.MethodGet, "/surveys/x/submissions", nil)
	req.SetPathValue("id", survey.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var entries []any
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
