package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSubmissionList returns the recorded submission attempts for a
// survey, newest first.
func HandleSubmissionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		col, err := app.FindCollectionByNameOrId("submissions")
		if err != nil {
			log.Printf("submission_list: submissions collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "survey = {:surveyId}", "-created", 0, 0, map[string]any{"surveyId": surveyID})
		if err != nil {
			records = nil
		}

		type entry struct {
			ID      string `json:"id"`
			Target  string `json:"target"`
			OK      bool   `json:"ok"`
			Detail  string `json:"detail"`
			Created string `json:"created"`
		}
		entries := make([]entry, 0, len(records))
		for _, r := range records {
			entries = append(entries, entry{
				ID:      r.Id,
				Target:  r.GetString("target"),
				OK:      r.GetBool("ok"),
				Detail:  r.GetString("detail"),
				Created: r.GetDateTime("created").String(),
			})
		}
		return e.JSON(http.StatusOK, entries)
	}
}
