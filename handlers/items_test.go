package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emptyhomes/services"
	"emptyhomes/testhelpers"
)

func TestHandleAddItem_NormalizesCatalogSections(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	saver, _ := newTestSaver()
	handler := HandleAddItem(app, saver)

	body := `{"code": "KIT001", "description": "Replace worktop", "uom": "M", "smv": 30, "cost": 5, "quantity": 9, "comment": "ignored", "recharge": true}`
	req := httptest.NewRequest(http.MethodPost, "/surveys/x/sections/kitchen/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("section", "Kitchen")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var got services.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.ID == "" {
		t.Error("added item has no ID")
	}
	if got.Kind != services.KindPriced {
		t.Errorf("Kind = %q, want %q", got.Kind, services.KindPriced)
	}
	if got.Quantity != 0 || got.Comment != "" || got.Recharge {
		t.Errorf("catalog item not neutralized: %+v", got)
	}
	if got.SMV != 30 || got.Cost != 5 {
		t.Errorf("catalog fields lost: %+v", got)
	}

	record, err := app.FindRecordById("survey_items", got.ID)
	if err != nil {
		t.Fatalf("saved item not found: %v", err)
	}
	if record.GetString("section") != "kitchen" {
		t.Errorf("section = %q, want normalized kitchen", record.GetString("section"))
	}
}

func TestHandleAddItem_FreeFormKeepsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	saver, _ := newTestSaver()
	handler := HandleAddItem(app, saver)

	body := `{"description": "Fence repair", "cost": 200, "time_estimate": 2.5, "contractor": "Acme Ltd", "recharge": true}`
	req := httptest.NewRequest(http.MethodPost, "/surveys/x/sections/contractor%20work/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("section", "contractor work")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var got services.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.Kind != services.KindFreeForm {
		t.Errorf("Kind = %q, want %q", got.Kind, services.KindFreeForm)
	}
	if got.Cost != 200 || got.TimeEstimate != 2.5 || !got.Recharge || got.Contractor != "Acme Ltd" {
		t.Errorf("free-form fields altered: %+v", got)
	}
}

func TestHandleAddItem_UnknownSection(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	saver, _ := newTestSaver()
	handler := HandleAddItem(app, saver)

	req := httptest.NewRequest(http.MethodPost, "/surveys/x/sections/garage/items", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("section", "garage")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdateItem_FullReplacement(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	item := testhelpers.CreateTestItem(t, app, survey.Id, "kitchen", 0, services.Item{
		Code: "KIT001", Description: "Replace worktop", UOM: "M", SMV: 30, Cost: 5,
	})
	saver, _ := newTestSaver()
	handler := HandleUpdateItem(app, saver)

	body := `{"code": "KIT001", "description": "Replace worktop", "uom": "M", "smv": 30, "cost": 5, "quantity": 3, "comment": "tenant damage", "recharge": true}`
	req := httptest.NewRequest(http.MethodPatch, "/surveys/x/items/y", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	record, err := app.FindRecordById("survey_items", item.Id)
	if err != nil {
		t.Fatalf("item not found after update: %v", err)
	}
	if record.GetInt("quantity") != 3 || !record.GetBool("recharge") {
		t.Errorf("update not persisted: qty=%d recharge=%v",
			record.GetInt("quantity"), record.GetBool("recharge"))
	}
	if record.GetString("kind") != services.KindPriced {
		t.Errorf("kind changed on update: %q", record.GetString("kind"))
	}
}

func TestHandleUpdateItem_WrongSurvey(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	other := testhelpers.CreateTestSurvey(t, app, "Alex", "9 Low Rd")
	item := testhelpers.CreateTestItem(t, app, survey.Id, "kitchen", 0, services.Item{Code: "KIT001"})
	saver, _ := newTestSaver()
	handler := HandleUpdateItem(app, saver)

	req := httptest.NewRequest(http.MethodPatch, "/surveys/x/items/y", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", other.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another survey's item", rec.Code)
	}
}

func TestHandleRemoveItem(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	survey := testhelpers.CreateTestSurvey(t, app, "Sam", "12 High St")
	item := testhelpers.CreateTestItem(t, app, survey.Id, "kitchen", 0, services.Item{Code: "KIT001"})
	saver, _ := newTestSaver()
	handler := HandleRemoveItem(app, saver)

	req := httptest.NewRequest(http.MethodDelete, "/surveys/x/items/y", nil)
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if _, err := app.FindRecordById("survey_items", item.Id); err == nil {
		t.Error("item still present after delete")
	}

	// Deleting again is a no-op, not an error.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/surveys/x/items/y", nil)
	req.SetPathValue("id", survey.Id)
	req.SetPathValue("itemId", item.Id)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("repeat delete status = %d, want 204", rec.Code)
	}
}
