package handlers

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestSaver returns a saver whose writes land in the returned channel.
// Tests that only need a saver to exist can ignore the channel.
func newTestSaver() (*services.SnapshotSaver, chan string) {
	saved := make(chan string, 16)
	saver := services.NewSnapshotSaver(5*time.Millisecond, func(surveyID string) {
		saved <- surveyID
	})
	return saver, saved
}
