// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/collections"
	"emptyhomes/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestSurvey creates a survey record and returns it. No line items
// are seeded; use CreateTestItem for those.
func CreateTestSurvey(t *testing.T, app *pocketbase.PocketBase, surveyor, address string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("surveys")
	if err != nil {
		t.Fatalf("failed to find surveys collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("surveyor_name", surveyor)
	record.Set("property_address", address)
	record.Set("void_rating", "Green")
	record.Set("void_type", "Minor")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test survey: %v", err)
	}

	return record
}

// CreateTestItem creates a line item record in the given section.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, surveyID, section string, sortOrder int, item services.Item) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("survey_items")
	if err != nil {
		t.Fatalf("failed to find survey_items collection: %v", err)
	}

	kind := item.Kind
	if kind == "" {
		kind = services.KindPriced
		if services.IsFreeForm(section) {
			kind = services.KindFreeForm
		}
	}

	record := core.NewRecord(col)
	record.Set("survey", surveyID)
	record.Set("section", section)
	record.Set("sort_order", sortOrder)
	record.Set("kind", kind)
	record.Set("code", item.Code)
	record.Set("description", item.Description)
	record.Set("uom", item.UOM)
	record.Set("smv", item.SMV)
	record.Set("cost", item.Cost)
	record.Set("quantity", item.Quantity)
	record.Set("comment", item.Comment)
	record.Set("recharge", item.Recharge)
	record.Set("time_estimate", item.TimeEstimate)
	record.Set("contractor", item.Contractor)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// SeedTestCatalog inserts catalog rows so survey creation has templates to
// copy. Rows are keyed by section in the given order.
func SeedTestCatalog(t *testing.T, app *pocketbase.PocketBase, rows map[string][]services.CatalogItem) {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sor_catalog")
	if err != nil {
		t.Fatalf("failed to find sor_catalog collection: %v", err)
	}

	for section, items := range rows {
		for i, item := range items {
			record := core.NewRecord(col)
			record.Set("section", section)
			record.Set("sort_order", i)
			record.Set("code", item.Code)
			record.Set("description", item.Description)
			record.Set("uom", item.UOM)
			record.Set("smv", item.SMV)
			record.Set("cost", item.Cost)
			if err := app.Save(record); err != nil {
				t.Fatalf("failed to seed catalog row %s: %v", item.Code, err)
			}
		}
	}
}
