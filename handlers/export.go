package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
	"emptyhomes/submit"
)

// HandleExportExcel streams the survey workbook as an .xlsx download.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}
		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		buf, err := services.GenerateExcel(services.BuildExportData(survey))
		if err != nil {
			log.Printf("export_excel: could not generate workbook for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Could not generate export")
		}
		return sendDownload(e, services.ExportBaseName(survey.PropertyAddress)+".xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
	}
}

// HandleExportPDF streams the survey report as a PDF download.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}
		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		buf, err := services.GeneratePDF(services.BuildExportData(survey))
		if err != nil {
			log.Printf("export_pdf: could not generate report for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Could not generate export")
		}
		return sendDownload(e, services.ExportBaseName(survey.PropertyAddress)+".pdf",
			"application/pdf", buf)
	}
}

// HandleExportBundle streams a zip of the workbook and the PDF, marks the
// survey submitted and fires the network submissions in the background.
// Submission failures never block or fail the download: each attempt is
// recorded in the submissions collection instead.
func HandleExportBundle(app *pocketbase.PocketBase, submitter *submit.Submitter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}
		survey, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("export_bundle: %v", err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		baseName := services.ExportBaseName(survey.PropertyAddress)
		buf, err := services.GenerateBundle(services.BuildExportData(survey), baseName)
		if err != nil {
			log.Printf("export_bundle: could not generate bundle for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Could not generate export")
		}

		if record, err := app.FindRecordById("surveys", surveyID); err == nil {
			record.Set("status", "submitted")
			if err := app.Save(record); err != nil {
				log.Printf("export_bundle: could not mark %s submitted: %v", surveyID, err)
			}
		}

		if submitter.Enabled() {
			go runSubmissions(app, submitter, survey)
		}

		return sendDownload(e, baseName+".zip", "application/zip", buf)
	}
}

// runSubmissions sends the filtered survey to the configured targets and
// records each outcome.
func runSubmissions(app *pocketbase.PocketBase, submitter *submit.Submitter, survey *services.Survey) {
	payload := services.FilterForSubmission(survey)
	for result := range submitter.Submit(context.Background(), payload) {
		recordSubmission(app, survey.ID, result)
	}
}

func recordSubmission(app *pocketbase.PocketBase, surveyID string, result submit.Result) {
	col, err := app.FindCollectionByNameOrId("submissions")
	if err != nil {
		log.Printf("submission: submissions collection not found: %v", err)
		return
	}

	record := core.NewRecord(col)
	record.Set("survey", surveyID)
	record.Set("target", result.Target)
	record.Set("ok", result.Err == nil)
	switch {
	case result.Err != nil:
		log.Printf("submission: %s failed for %s: %v", result.Target, surveyID, result.Err)
		record.Set("detail", result.Err.Error())
	case result.DocID != "":
		record.Set("detail", result.DocID)
	}
	if err := app.Save(record); err != nil {
		log.Printf("submission: could not record %s result for %s: %v", result.Target, surveyID, err)
	}
}

func sendDownload(e *core.RequestEvent, filename, contentType string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}
