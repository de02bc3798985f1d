package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// WriteSurveySnapshot serializes the survey's current state into its
// snapshot record, creating the record on first write. It is the save
// callback behind the debounced snapshot saver.
func WriteSurveySnapshot(app *pocketbase.PocketBase, surveyID string) {
	survey, err := loadSurvey(app, surveyID)
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	data, err := services.EncodeSnapshot(survey)
	if err != nil {
		log.Printf("snapshot: could not encode %s: %v", surveyID, err)
		return
	}

	record, err := findSnapshotRecord(app, surveyID)
	if err != nil {
		col, err := app.FindCollectionByNameOrId("survey_snapshots")
		if err != nil {
			log.Printf("snapshot: survey_snapshots collection not found: %v", err)
			return
		}
		record = core.NewRecord(col)
		record.Set("survey", surveyID)
	}
	record.Set("version", services.SnapshotVersion)
	record.Set("state", string(data))
	if err := app.Save(record); err != nil {
		log.Printf("snapshot: could not save %s: %v", surveyID, err)
	}
}

// HandleSnapshotStatus reports whether a saved snapshot exists and when it
// was last written.
func HandleSnapshotStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		record, err := findSnapshotRecord(app, surveyID)
		if err != nil {
			return e.JSON(http.StatusOK, map[string]any{"exists": false})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"exists":  true,
			"version": record.GetInt("version"),
			"updated": record.GetDateTime("updated").String(),
		})
	}
}

// HandleSnapshotWrite forces an immediate snapshot write, skipping the
// debounce window.
func HandleSnapshotWrite(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}
		if _, err := app.FindRecordById("surveys", surveyID); err != nil {
			return e.String(http.StatusNotFound, "Survey not found")
		}

		saver.Cancel(surveyID)
		WriteSurveySnapshot(app, surveyID)
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleSnapshotRestore replaces the survey's live state with its saved
// snapshot. Older snapshot formats are migrated on read.
func HandleSnapshotRestore(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		record, err := app.FindRecordById("surveys", surveyID)
		if err != nil {
			log.Printf("snapshot_restore: survey not found %s: %v", surveyID, err)
			return e.String(http.StatusNotFound, "Survey not found")
		}

		snapRecord, err := findSnapshotRecord(app, surveyID)
		if err != nil {
			return e.String(http.StatusNotFound, "No saved snapshot for this survey")
		}

		survey, err := services.DecodeSnapshot([]byte(snapRecord.GetString("state")))
		if err != nil {
			log.Printf("snapshot_restore: could not decode %s: %v", surveyID, err)
			return e.String(http.StatusUnprocessableEntity, "Saved snapshot could not be read")
		}

		applySurveyFields(record, survey)
		if err := app.Save(record); err != nil {
			log.Printf("snapshot_restore: could not save survey %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if err := replaceSurveyItems(app, surveyID, survey); err != nil {
			log.Printf("snapshot_restore: could not replace items for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		saver.Cancel(surveyID)

		restored, err := loadSurvey(app, surveyID)
		if err != nil {
			log.Printf("snapshot_restore: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, surveyResponse(restored))
	}
}

// HandleSnapshotDiscard deletes the saved snapshot and drops any pending
// debounced write.
func HandleSnapshotDiscard(app *pocketbase.PocketBase, saver *services.SnapshotSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")
		if surveyID == "" {
			return e.String(http.StatusBadRequest, "Missing survey ID")
		}

		saver.Cancel(surveyID)
		record, err := findSnapshotRecord(app, surveyID)
		if err != nil {
			return e.NoContent(http.StatusNoContent)
		}
		if err := app.Delete(record); err != nil {
			log.Printf("snapshot_discard: could not delete for %s: %v", surveyID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func findSnapshotRecord(app *pocketbase.PocketBase, surveyID string) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("survey_snapshots")
	if err != nil {
		return nil, err
	}
	records, err := app.FindRecordsByFilter(col, "survey = {:surveyId}", "-updated", 1, 0, map[string]any{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no snapshot for survey %s", surveyID)
	}
	return records[0], nil
}
