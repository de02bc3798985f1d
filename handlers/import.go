package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// HandleImportExcel merges an uploaded workbook into the survey: summary
// fields overwrite the header, priced rows overlay matching catalog items
// by code and the free-form sections are rebuilt from the sheet.
func HandleImportExcel(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		record, err := app.FindRecordById("surveys", surveyID)
		if err != nil {
			log.Printf("import: survey not found %s: %v", surveyID, err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			return e.String(http.StatusBadRequest, "Only .xlsx files can be imported")
		}

		imported, err := services.ParseWorkbook(file)
		if err != nil {
			log.Printf("import: could not parse %s: %v", header.Filename, err)
			return e.String(http.StatusBadRequest, "Could not read the uploaded workbook")
		}

		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("import: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		services.ApplyImport(survey, imported)

		applySurveyFields(record, survey)
		if err := app.Save(record); err != nil {
			log.Printf("import: could not save survey %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if err := replaceSurveyItems(app, surveyID, survey); err != nil {
			log.Printf("import: could not replace items for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Queue(surveyID)

		merged, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("import: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, surveyResponse(merged))
	}
}
