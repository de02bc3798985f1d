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

type surveyCreateRequest struct {
	SurveyorName    string `json:"surveyor_name" form:"surveyor_name"`
	PropertyAddress string `json:"property_address" form:"property_address"`
}

// HandleSurveyCreate creates a survey record and pre-populates every
// catalog section with its template rows: priced items start neutral
// (quantity 0, no comment, recharge off) and each free-form section gets
// one blank template row, the lorry clearance one carrying the placeholder
// cost.
func HandleSurveyCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req surveyCreateRequest
		if err := e.BindBody(&req); err != nil {
			log.Printf("survey_create: could not bind body: %v", err)
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		surveyor := strings.TrimSpace(req.SurveyorName)
		address := strings.TrimSpace(req.PropertyAddress)
		if surveyor == "" || address == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{
				"error": "surveyor_name and property_address are required",
			})
		}

		surveysCol, err := app.FindCollectionByNameOrId("surveys")
		if err != nil {
			log.Printf("survey_create: surveys collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(surveysCol)
		record.Set("surveyor_name", surveyor)
		record.Set("property_address", address)
		record.Set("void_rating", "Green")
		record.Set("void_type", "Minor")
		record.Set("status", "draft")
		if err := app.Save(record); err != nil {
			log.Printf("survey_create: could not save survey: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := seedSurveyItems(app, record.Id); err != nil {
			log.Printf("survey_create: could not seed items for %s: %v", record.Id, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		survey, err := loadSurvey(app, record.Id)
		if err != nil {
			log.Printf("survey_create: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusCreated, surveyResponse(survey))
	}
}

// seedSurveyItems copies the SOR catalog templates into a fresh survey.
func seedSurveyItems(app *pocketbase.PocketBase, surveyID string) error {
	itemsCol, err := app.FindCollectionByNameOrId("survey_items")
	if err != nil {
		return err
	}

	sortOrder := 0
	for _, section := range services.SectionOrder {
		if services.IsFreeForm(section) {
			record := core.NewRecord(itemsCol)
			record.Set("survey", surveyID)
			record.Set("section", section)
			record.Set("sort_order", sortOrder)
			record.Set("kind", services.KindFreeForm)
			if section == services.SectionLorry {
				record.Set("cost", services.DefaultLorryCost)
			}
			if err := app.Save(record); err != nil {
				return err
			}
			sortOrder++
			continue
		}

		templates, err := collections.CatalogForSection(app, section)
		if err != nil {
			return err
		}
		for _, tmpl := range templates {
			record := core.NewRecord(itemsCol)
			record.Set("survey", surveyID)
			record.Set("section", section)
			record.Set("sort_order", sortOrder)
			record.Set("kind", services.KindPriced)
			record.Set("code", tmpl.Code)
			record.Set("description", tmpl.Description)
			record.Set("uom", tmpl.UOM)
			record.Set("smv", tmpl.SMV)
			record.Set("cost", tmpl.Cost)
			record.Set("quantity", 0)
			if err := app.Save(record); err != nil {
				return err
			}
			sortOrder++
		}
	}
	return nil
}
