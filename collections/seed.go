package collections

import (
	"fmt"
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// DefaultSORFile is where the catalog document is looked up when SORS_FILE
// is not set.
const DefaultSORFile = "./sors.json"

// SeedCatalog loads the SOR price list into the sor_catalog collection.
// It runs once: if the collection already has rows, it is left alone.
// A missing or malformed file is logged and the app proceeds with empty
// sections — catalog load failure is never fatal.
func SeedCatalog(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("sor_catalog")
	if err != nil {
		return fmt.Errorf("sor_catalog collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		log.Println("SOR catalog already seeded, skipping.")
		return nil
	}

	path := os.Getenv("SORS_FILE")
	if path == "" {
		path = DefaultSORFile
	}

	catalog, err := services.LoadSORFile(path)
	if err != nil {
		log.Printf("Warning: could not load SOR catalog from %s: %v", path, err)
		return nil
	}

	count := 0
	for section, items := range catalog {
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
				return fmt.Errorf("seed catalog row %s: %w", item.Code, err)
			}
			count++
		}
	}
	log.Printf("Seeded %d SOR catalog rows from %s", count, path)
	return nil
}

// CatalogForSection returns the catalog templates for one section in seed
// order.
func CatalogForSection(app *pocketbase.PocketBase, section string) ([]services.CatalogItem, error) {
	col, err := app.FindCollectionByNameOrId("sor_catalog")
	if err != nil {
		return nil, fmt.Errorf("sor_catalog collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "section = {:section}", "sort_order", 0, 0, map[string]any{"section": section})
	if err != nil {
		return nil, fmt.Errorf("query catalog section %s: %w", section, err)
	}

	items := make([]services.CatalogItem, 0, len(records))
	for _, r := range records {
		items = append(items, services.CatalogItem{
			Section:     r.GetString("section"),
			Code:        r.GetString("code"),
			Description: r.GetString("description"),
			UOM:         r.GetString("uom"),
			SMV:         r.GetFloat("smv"),
			Cost:        r.GetFloat("cost"),
		})
	}
	return items, nil
}
