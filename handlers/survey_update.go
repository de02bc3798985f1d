package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// surveyUpdateRequest carries header-field changes. Pointers distinguish
// "not sent" from "cleared".
type surveyUpdateRequest struct {
	SurveyorName      *string `json:"surveyor_name"`
	PropertyAddress   *string `json:"property_address"`
	VoidRating        *string `json:"void_rating"`
	VoidType          *string `json:"void_type"`
	MWRRequired       *bool   `json:"mwr_required"`
	OverallComments   *string `json:"overall_comments"`
	AsbestosNotes     *string `json:"asbestos_notes"`
	LorryNotes        *string `json:"lorry_notes"`
	ContractorNotes   *string `json:"contractor_notes"`
	LoftChecked       *string `json:"loft_checked"`
	LoftNeedsClearing *string `json:"loft_needs_clearing"`
	CookerClearance   *string `json:"cooker_clearance"`
	CookerPointType   *string `json:"cooker_point_type"`
	KitchenExtractor  *string `json:"kitchen_extractor"`
	KitchenMWR        *string `json:"kitchen_mwr"`
	BathroomExtractor *string `json:"bathroom_extractor"`
	ShowerFitted      *string `json:"shower_fitted"`
	ShowerType        *string `json:"shower_type"`
	BathTurn          *string `json:"bath_turn"`
	BathroomMWR       *string `json:"bathroom_mwr"`
}

// HandleSurveyUpdate patches the survey's header fields and queues a
// debounced snapshot write.
func HandleSurveyUpdate(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		record, err := app.FindRecordById("surveys", surveyID)
		if err != nil {
			log.Printf("survey_update: not found %s: %v", surveyID, err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		var req surveyUpdateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("survey_update: could not bind body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		setIfPresent := func(field string, val *string) {
			if val != nil {
				record.Set(field, *val)
			}
		}
		setIfPresent("surveyor_name", req.SurveyorName)
		setIfPresent("property_address", req.PropertyAddress)
		setIfPresent("void_rating", req.VoidRating)
		setIfPresent("void_type", req.VoidType)
		setIfPresent("overall_comments", req.OverallComments)
		setIfPresent("asbestos_notes", req.AsbestosNotes)
		setIfPresent("lorry_notes", req.LorryNotes)
		setIfPresent("contractor_notes", req.ContractorNotes)
		setIfPresent("loft_checked", req.LoftChecked)
		setIfPresent("loft_needs_clearing", req.LoftNeedsClearing)
		setIfPresent("cooker_clearance", req.CookerClearance)
		setIfPresent("cooker_point_type", req.CookerPointType)
		setIfPresent("kitchen_extractor", req.KitchenExtractor)
		setIfPresent("kitchen_mwr", req.KitchenMWR)
		setIfPresent("bathroom_extractor", req.BathroomExtractor)
		setIfPresent("shower_fitted", req.ShowerFitted)
		setIfPresent("shower_type", req.ShowerType)
		setIfPresent("bath_turn", req.BathTurn)
		setIfPresent("bathroom_mwr", req.BathroomMWR)
		if req.MWRRequired != nil {
			record.Set("mwr_required", *req.MWRRequired)
		}

		if err := app.Save(record); err != nil {
			log.Printf("survey_update: could not save %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Queue(surveyID)

		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("survey_update: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, surveyResponse(survey))
	}
}

// HandleSurveyDelete removes the survey; items, snapshots and submission
// records cascade with it. Any pending snapshot write is cancelled.
func HandleSurveyDelete(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		record, err := app.FindRecordById("surveys", surveyID)
		if err != nil {
			log.Printf("survey_delete: not found %s: %v", surveyID, err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		saver.Cancel(surveyID)
		if err := app.Delete(record); err != nil {
			log.Printf("survey_delete: could not delete %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
