// Package handlers wires HTTP routes to the survey domain: record CRUD,
// line-item edits, exports, import, snapshots and submission status.
package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// loadSurvey builds the in-memory survey snapshot from the survey record
// and its item records, sections in catalog order, items by sort_order.
func loadSurvey(app *pocketbase.PocketBase, surveyID string) (*services.Survey, error) {
	record, err := app.FindRecordById("surveys", surveyID)
	if err != nil {
		return nil, fmt.Errorf("survey not found: %w", err)
	}

	survey := services.NewSurvey(record.GetString("surveyor_name"), record.GetString("property_address"))
	survey.ID = record.Id
	survey.VoidRating = record.GetString("void_rating")
	survey.VoidType = record.GetString("void_type")
	survey.MWRRequired = record.GetBool("mwr_required")
	survey.OverallComments = record.GetString("overall_comments")
	survey.Notes = services.FeatureNotes{
		AsbestosNotes:     record.GetString("asbestos_notes"),
		LorryNotes:        record.GetString("lorry_notes"),
		ContractorNotes:   record.GetString("contractor_notes"),
		LoftChecked:       record.GetString("loft_checked"),
		LoftNeedsClearing: record.GetString("loft_needs_clearing"),
		CookerClearance:   record.GetString("cooker_clearance"),
		CookerPointType:   record.GetString("cooker_point_type"),
		KitchenExtractor:  record.GetString("kitchen_extractor"),
		KitchenMWR:        record.GetString("kitchen_mwr"),
		BathroomExtractor: record.GetString("bathroom_extractor"),
		ShowerFitted:      record.GetString("shower_fitted"),
		ShowerType:        record.GetString("shower_type"),
		BathTurn:          record.GetString("bath_turn"),
		BathroomMWR:       record.GetString("bathroom_mwr"),
	}

	itemsCol, err := app.FindCollectionByNameOrId("survey_items")
	if err != nil {
		return nil, fmt.Errorf("survey_items collection not found: %w", err)
	}
	itemRecords, err := app.FindRecordsByFilter(itemsCol, "survey = {:surveyId}", "sort_order", 0, 0, map[string]any{"surveyId": surveyID})
	if err != nil {
		itemRecords = nil
	}

	for _, r := range itemRecords {
		sec := survey.Section(r.GetString("section"))
		if sec == nil {
			continue
		}
		sec.Items = append(sec.Items, itemFromRecord(r))
	}
	return survey, nil
}

func itemFromRecord(r *core.Record) services.Item {
	return services.Item{
		ID:           r.Id,
		Kind:         r.GetString("kind"),
		Code:         r.GetString("code"),
		Description:  r.GetString("description"),
		UOM:          r.GetString("uom"),
		SMV:          r.GetFloat("smv"),
		Cost:         r.GetFloat("cost"),
		Quantity:     r.GetInt("quantity"),
		Comment:      r.GetString("comment"),
		Recharge:     r.GetBool("recharge"),
		TimeEstimate: r.GetFloat("time_estimate"),
		Contractor:   r.GetString("contractor"),
	}
}

func setItemFields(record *core.Record, it services.Item) {
	record.Set("kind", it.Kind)
	record.Set("code", it.Code)
	record.Set("description", it.Description)
	record.Set("uom", it.UOM)
	record.Set("smv", it.SMV)
	record.Set("cost", it.Cost)
	record.Set("quantity", it.Quantity)
	record.Set("comment", it.Comment)
	record.Set("recharge", it.Recharge)
	record.Set("time_estimate", it.TimeEstimate)
	record.Set("contractor", it.Contractor)
}

// replaceSurveyItems rewrites the survey's item records from the snapshot:
// everything is deleted and recreated in section order. Used by import and
// snapshot restore, where the merged state is authoritative.
func replaceSurveyItems(app *pocketbase.PocketBase, surveyID string, survey *services.Survey) error {
	itemsCol, err := app.FindCollectionByNameOrId("survey_items")
	if err != nil {
		return fmt.Errorf("survey_items collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(itemsCol, "survey = {:surveyId}", "", 0, 0, map[string]any{"surveyId": surveyID})
	if err == nil {
		for _, r := range existing {
			if err := app.Delete(r); err != nil {
				return fmt.Errorf("clear item %s: %w", r.Id, err)
			}
		}
	}

	sortOrder := 0
	for _, sec := range survey.Sections {
		for _, it := range sec.Items {
			record := core.NewRecord(itemsCol)
			record.Set("survey", surveyID)
			record.Set("section", sec.Name)
			record.Set("sort_order", sortOrder)
			setItemFields(record, it)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("save item in %s: %w", sec.Name, err)
			}
			sortOrder++
		}
	}
	return nil
}

// applySurveyFields copies the snapshot's header fields onto the record.
func applySurveyFields(record *core.Record, survey *services.Survey) {
	record.Set("surveyor_name", survey.SurveyorName)
	record.Set("property_address", survey.PropertyAddress)
	record.Set("void_rating", survey.VoidRating)
	record.Set("void_type", survey.VoidType)
	record.Set("mwr_required", survey.MWRRequired)
	record.Set("overall_comments", survey.OverallComments)
	record.Set("asbestos_notes", survey.Notes.AsbestosNotes)
	record.Set("lorry_notes", survey.Notes.LorryNotes)
	record.Set("contractor_notes", survey.Notes.ContractorNotes)
	record.Set("loft_checked", survey.Notes.LoftChecked)
	record.Set("loft_needs_clearing", survey.Notes.LoftNeedsClearing)
	record.Set("cooker_clearance", survey.Notes.CookerClearance)
	record.Set("cooker_point_type", survey.Notes.CookerPointType)
	record.Set("kitchen_extractor", survey.Notes.KitchenExtractor)
	record.Set("kitchen_mwr", survey.Notes.KitchenMWR)
	record.Set("bathroom_extractor", survey.Notes.BathroomExtractor)
	record.Set("shower_fitted", survey.Notes.ShowerFitted)
	record.Set("shower_type", survey.Notes.ShowerType)
	record.Set("bath_turn", survey.Notes.BathTurn)
	record.Set("bathroom_mwr", survey.Notes.BathroomMWR)
}
