package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/collections"
	"emptyhomes/services"
)

// HandleCatalogAll returns the full SOR catalog grouped by section.
func HandleCatalogAll(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("sor_catalog")
		if err != nil {
			log.Printf("catalog: sor_catalog collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "id != ''", "section, sort_order", 0, 0, nil)
		if err != nil {
			records = nil
		}

		catalog := make(map[string][]services.CatalogItem)
		for _, r := range records {
			section := r.GetString("section")
			catalog[section] = append(catalog[section], services.CatalogItem{
				Section:     section,
				Code:        r.GetString("code"),
				Description: r.GetString("description"),
				UOM:         r.GetString("uom"),
				SMV:         r.GetFloat("smv"),
				Cost:        r.GetFloat("cost"),
			})
		}
		return e.JSON(http.StatusOK, catalog)
	}
}

// HandleCatalogSection returns the SOR templates for one catalog section.
func HandleCatalogSection(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		section := services.NormalizeSection(e.Request.PathValue("section"))
		if section != services.SearchableSection && !services.IsKnownSection(section) {
			return e.String(http.StatusBadRequest, "Unknown section")
		}

		items, err := collections.CatalogForSection(app, section)
		if err != nil {
			log.Printf("catalog: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, items)
	}
}

// HandleCatalogSearch matches the query against every catalog row, the
// reserved searchable list included. All query terms must appear in the
// row's code or description.
func HandleCatalogSearch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		if query == "" {
			return e.JSON(http.StatusOK, []services.CatalogItem{})
		}

		col, err := app.FindCollectionByNameOrId("sor_catalog")
		if err != nil {
			log.Printf("catalog_search: sor_catalog collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "id != ''", "section, sort_order", 0, 0, nil)
		if err != nil {
			records = nil
		}

		matches := make([]services.CatalogItem, 0)
		for _, r := range records {
			item := services.CatalogItem{
				Section:     r.GetString("section"),
				Code:        r.GetString("code"),
				Description: r.GetString("description"),
				UOM:         r.GetString("uom"),
				SMV:         r.GetFloat("smv"),
				Cost:        r.GetFloat("cost"),
			}
			if services.MatchesSearch(query, item) {
				matches = append(matches, item)
			}
		}
		return e.JSON(http.StatusOK, matches)
	}
}
