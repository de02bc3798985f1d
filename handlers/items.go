package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

type itemRequest struct {
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	UOM          string  `json:"uom"`
	SMV          float64 `json:"smv"`
	Cost         float64 `json:"cost"`
	Quantity     int     `json:"quantity"`
	Comment      string  `json:"comment"`
	Recharge     bool    `json:"recharge"`
	TimeEstimate float64 `json:"time_estimate"`
	Contractor   string  `json:"contractor"`
}

func (r itemRequest) toItem() services.Item {
	return services.Item{
		Code:         r.Code,
		Description:  r.Description,
		UOM:          r.UOM,
		SMV:          r.SMV,
		Cost:         r.Cost,
		Quantity:     r.Quantity,
		Comment:      r.Comment,
		Recharge:     r.Recharge,
		TimeEstimate: r.TimeEstimate,
		Contractor:   r.Contractor,
	}
}

// HandleAddItem appends a line item to a section. Catalog sections get the
// neutral-state normalization: whatever the caller sent, a new priced item
// starts with quantity 0, no comment and recharge off.
func HandleAddItem(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		section := services.NormalizeSection(e.Request.PathValue("section"))
		if surveyID == "" || section == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}
		if !services.IsKnownSection(section) {
			return e.String(http.StatusBadRequest, "Unknown section")
		}
		if _, err := app.FindRecordById("surveys", surveyID); err != nil {
			log.Printf("item_add: survey not found %s: %v", surveyID, err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		var req itemRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("item_add: could not bind body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		item := services.NormalizeNewItem(section, req.toItem())

		itemsCol, err := app.FindCollectionByNameOrId("survey_items")
		if err != nil {
			log.Printf("item_add: survey_items collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(itemsCol)
		record.Set("survey", surveyID)
		record.Set("section", section)
		record.Set("sort_order", nextSortOrder(app, itemsCol, surveyID))
		setItemFields(record, item)
		if err := app.Save(record); err != nil {
			log.Printf("item_add: could not save item: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Queue(surveyID)
		item.ID = record.Id
		return e.JSON(http.StatusCreated, item)
	}
}

// HandleUpdateItem replaces a line item in full: callers send the complete
// item, including the fields they did not change.
func HandleUpdateItem(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")
		if surveyID == "" || itemID == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		record, err := app.FindRecordById("survey_items", itemID)
		if err != nil || record.GetString("survey") != surveyID {
			log.Printf("item_update: not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Item not found")
		}

		var req itemRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("item_update: could not bind body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		item := req.toItem()
		item.Kind = record.GetString("kind") // kind never changes on update
		setItemFields(record, item)
		if err := app.Save(record); err != nil {
			log.Printf("item_update: could not save %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Queue(surveyID)
		item.ID = record.Id
		return e.JSON(http.StatusOK, item)
	}
}

// HandleRemoveItem deletes a line item. Removing an item that is already
// gone is a no-op, not an error.
func HandleRemoveItem(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")
		if surveyID == "" || itemID == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}

		record, err := app.FindRecordById("survey_items", itemID)
		if err != nil || record.GetString("survey") != surveyID {
			return e.NoContent(http.StatusNoContent)
		}
		if err := app.Delete(record); err != nil {
			log.Printf("item_remove: could not delete %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Queue(surveyID)
		return e.NoContent(http.StatusNoContent)
	}
}

// nextSortOrder returns one past the survey's highest item sort_order.
func nextSortOrder(app *pocketbase.PocketBase, itemsCol *core.Collection, surveyID string) int {
	records, err := app.FindRecordsByFilter(itemsCol, "survey = {:surveyId}", "-sort_order", 1, 0, map[string]any{"surveyId": surveyID})
	if err != nil || len(records) == 0 {
		return 0
	}
	return records[0].GetInt("sort_order") + 1
}
