// Package collections programmatically creates the PocketBase collections
// backing the survey service and seeds the SOR catalog.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup ensures the surveys, survey_items, sor_catalog, survey_snapshots
// and submissions collections exist.
func Setup(app *pocketbase.PocketBase) {
	surveys := ensureCollection(app, "surveys", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "surveyor_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "property_address", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "void_rating",
			Values:    []string{"Green", "Amber", "Red"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "void_type",
			Values:    []string{"Minor", "Major"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "mwr_required"})
		c.Fields.Add(&core.TextField{Name: "overall_comments"})

		// Per-room feature answers recorded outside the item lists.
		c.Fields.Add(&core.TextField{Name: "asbestos_notes"})
		c.Fields.Add(&core.TextField{Name: "lorry_notes"})
		c.Fields.Add(&core.TextField{Name: "contractor_notes"})
		c.Fields.Add(&core.TextField{Name: "loft_checked"})
		c.Fields.Add(&core.TextField{Name: "loft_needs_clearing"})
		c.Fields.Add(&core.TextField{Name: "cooker_clearance"})
		c.Fields.Add(&core.TextField{Name: "cooker_point_type"})
		c.Fields.Add(&core.TextField{Name: "kitchen_extractor"})
		c.Fields.Add(&core.TextField{Name: "kitchen_mwr"})
		c.Fields.Add(&core.TextField{Name: "bathroom_extractor"})
		c.Fields.Add(&core.TextField{Name: "shower_fitted"})
		c.Fields.Add(&core.TextField{Name: "shower_type"})
		c.Fields.Add(&core.TextField{Name: "bath_turn"})
		c.Fields.Add(&core.TextField{Name: "bathroom_mwr"})

		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    []string{"draft", "submitted"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "survey_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "survey",
			Required:      true,
			CollectionId:  surveys.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "section", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{"priced", "freeform"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "uom"})
		c.Fields.Add(&core.NumberField{Name: "smv"})
		c.Fields.Add(&core.NumberField{Name: "cost"})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.TextField{Name: "comment"})
		c.Fields.Add(&core.BoolField{Name: "recharge"})
		c.Fields.Add(&core.NumberField{Name: "time_estimate"})
		c.Fields.Add(&core.TextField{Name: "contractor"})
	})

	ensureCollection(app, "sor_catalog", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "section", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom"})
		c.Fields.Add(&core.NumberField{Name: "smv"})
		c.Fields.Add(&core.NumberField{Name: "cost"})
	})

	ensureCollection(app, "survey_snapshots", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "survey",
			Required:      true,
			CollectionId:  surveys.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "version", Required: true})
		c.Fields.Add(&core.JSONField{Name: "state", MaxSize: 5 << 20})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "submissions", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "survey",
			Required:      true,
			CollectionId:  surveys.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "target",
			Required:  true,
			Values:    []string{"dashboard", "docstore"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "ok"})
		c.Fields.Add(&core.TextField{Name: "detail"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
