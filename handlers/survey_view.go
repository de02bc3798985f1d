package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// surveyView is the JSON shape of a full survey read: the record plus its
// derived totals and recharge list.
type surveyView struct {
	Survey    *services.Survey        `json:"survey"`
	Totals    services.Totals         `json:"totals"`
	Recharges []services.RechargeLine `json:"recharges"`
}

func surveyResponse(survey *services.Survey) surveyView {
	return surveyView{
		Survey:    survey,
		Totals:    services.ComputeTotals(survey),
		Recharges: services.ExtractRecharges(survey),
	}
}

// HandleSurveyList returns the survey records, newest first, without items.
func HandleSurveyList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("surveys")
		if err != nil {
			log.Printf("survey_list: surveys collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			records = nil
		}

		type listEntry struct {
			ID              string `json:"id"`
			SurveyorName    string `json:"surveyor_name"`
			PropertyAddress string `json:"property_address"`
			VoidRating      string `json:"void_rating"`
			VoidType        string `json:"void_type"`
			Status          string `json:"status"`
			Created         string `json:"created"`
		}
		entries := make([]listEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, listEntry{
				ID:              r.Id,
				SurveyorName:    r.GetString("surveyor_name"),
				PropertyAddress: r.GetString("property_address"),
				VoidRating:      r.GetString("void_rating"),
				VoidType:        r.GetString("void_type"),
				Status:          r.GetString("status"),
				Created:         r.GetDateTime("created").String(),
			})
		}
		return e.JSON(http.StatusOK, entries)
	}
}

// HandleSurveyView returns one survey with items, totals and recharges.
func HandleSurveyView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("survey_view: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}
		return e.JSON(http.StatusOK, surveyResponse(survey))
	}
}

// HandleSurveyTotals returns just the derived totals.
func HandleSurveyTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("survey_totals: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}
		return e.JSON(http.StatusOK, services.ComputeTotals(survey))
	}
}

// HandleSurveyRecharges returns the flat recharge projection.
func HandleSurveyRecharges(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("survey_recharges: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}
		return e.JSON(http.StatusOK, services.ExtractRecharges(survey))
	}
}
