package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveSurveyKey contextKey = "activeSurvey"

// ActiveSurvey is the survey a client is currently working on, tracked via
// the "active_survey" cookie.
type ActiveSurvey struct {
	ID              string
	PropertyAddress string
}

// GetActiveSurvey extracts the active survey from the request context.
func GetActiveSurvey(r *http.Request) *ActiveSurvey {
	if val, ok := r.Context().Value(ActiveSurveyKey).(*ActiveSurvey); ok {
		return val
	}
	return nil
}

// ActiveSurveyMiddleware reads the "active_survey" cookie, verifies the
// survey record still exists and stores it in the request context. A stale
// cookie is cleared rather than erroring.
func ActiveSurveyMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *ActiveSurvey

		cookie, err := e.Request.Cookie("active_survey")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("surveys", cookie.Value)
			if err == nil {
				active = &ActiveSurvey{
					ID:              rec.Id,
					PropertyAddress: rec.GetString("property_address"),
				}
			} else {
				log.Printf("middleware: active survey %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_survey",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveSurveyKey, active)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// HandleSurveyActivate sets the active survey cookie (30-day expiry).
func HandleSurveyActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		surveyID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("surveys", surveyID); err != nil {
			return e.String(http.StatusNotFound, "Survey not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_survey",
			Value:    surveyID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return e.JSON(http.StatusOK, map[string]string{"active": surveyID})
	}
}

// HandleSurveyDeactivate clears the active survey cookie.
func HandleSurveyDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_survey",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return e.NoContent(http.StatusNoContent)
	}
}
