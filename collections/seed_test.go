package collections_test

import (
	"os"
	"path/filepath"
	"testing"

	"emptyhomes/collections"
	"emptyhomes/testhelpers"
)

func writeSORFixture(t *testing.T) string {
	t.Helper()
	content := `{
		"kitchen": [
			{"code": "KIT001", "description": "Replace worktop", "uom": "M", "smv": 30, "cost": 5},
			{"code": "KIT002", "description": "Rehang door", "uom": "NO", "smv": 15, "cost": 8}
		],
		"searchable": [
			{"code": "SRCH1", "description": "Any-room SOR", "uom": "NO", "smv": 10, "cost": 2}
		]
	}`
	path := filepath.Join(t.TempDir(), "sors.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestSeedCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	t.Setenv("SORS_FILE", writeSORFixture(t))

	if err := collections.SeedCatalog(app); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}

	items, err := collections.CatalogForSection(app, "kitchen")
	if err != nil {
		t.Fatalf("CatalogForSection() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("kitchen has %d rows, want 2", len(items))
	}
	if items[0].Code != "KIT001" || items[0].SMV != 30 {
		t.Errorf("first row = %+v, want KIT001 in seed order", items[0])
	}

	searchable, err := collections.CatalogForSection(app, "searchable")
	if err != nil {
		t.Fatalf("CatalogForSection(searchable) error = %v", err)
	}
	if len(searchable) != 1 {
		t.Errorf("searchable has %d rows, want 1", len(searchable))
	}
}

func TestSeedCatalog_SkipsWhenSeeded(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	t.Setenv("SORS_FILE", writeSORFixture(t))

	if err := collections.SeedCatalog(app); err != nil {
		t.Fatalf("first seed error = %v", err)
	}
	if err := collections.SeedCatalog(app); err != nil {
		t.Fatalf("second seed error = %v", err)
	}

	items, err := collections.CatalogForSection(app, "kitchen")
	if err != nil {
		t.Fatalf("CatalogForSection() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("kitchen has %d rows after reseed, want 2", len(items))
	}
}

func TestSeedCatalog_MissingFileIsNotFatal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	t.Setenv("SORS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	if err := collections.SeedCatalog(app); err != nil {
		t.Errorf("SeedCatalog() with missing file = %v, want nil", err)
	}

	items, err := collections.CatalogForSection(app, "kitchen")
	if err != nil {
		t.Fatalf("CatalogForSection() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("kitchen has %d rows, want 0", len(items))
	}
}
