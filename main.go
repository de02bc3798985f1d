package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"emptyhomes/collections"
	"emptyhomes/handlers"
	"emptyhomes/services"
	"emptyhomes/submit"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := pocketbase.New()

	// Create collections and seed the SOR catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.SeedCatalog(app); err != nil {
			log.Printf("Warning: catalog seed failed: %v", err)
		}
		return se.Next()
	})

	saver := services.NewSnapshotSaver(services.SnapshotDebounce, func(surveyID string) {
		handlers.WriteSurveySnapshot(app, surveyID)
	})
	submitter := submit.FromEnv()
	if !submitter.Enabled() {
		log.Println("No submission targets configured; exports stay local.")
	}

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active survey middleware globally
		se.Router.BindFunc(handlers.ActiveSurveyMiddleware(app))

		// ── Survey activation ────────────────────────────────────
		se.Router.POST("/surveys/{id}/activate", handlers.HandleSurveyActivate(app))
		se.Router.POST("/surveys/deactivate", handlers.HandleSurveyDeactivate(app))

		// ── Survey CRUD ──────────────────────────────────────────
		se.Router.POST("/surveys", handlers.HandleSurveyCreate(app))
		se.Router.GET("/surveys", handlers.HandleSurveyList(app))
		se.Router.GET("/surveys/{id}", handlers.HandleSurveyView(app))
		se.Router.PATCH("/surveys/{id}", handlers.HandleSurveyUpdate(app, saver))
		se.Router.DELETE("/surveys/{id}", handlers.HandleSurveyDelete(app, saver))

		// ── Derived views ────────────────────────────────────────
		se.Router.GET("/surveys/{id}/totals", handlers.HandleSurveyTotals(app))
		se.Router.GET("/surveys/{id}/recharges", handlers.HandleSurveyRecharges(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/surveys/{id}/sections/{section}/items", handlers.HandleAddItem(app, saver))
		se.Router.PATCH("/surveys/{id}/items/{itemId}", handlers.HandleUpdateItem(app, saver))
		se.Router.DELETE("/surveys/{id}/items/{itemId}", handlers.HandleRemoveItem(app, saver))

		// ── Export and import ────────────────────────────────────
		se.Router.GET("/surveys/{id}/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/surveys/{id}/export/pdf", handlers.HandleExportPDF(app))
		se.Router.GET("/surveys/{id}/export/bundle", handlers.HandleExportBundle(app, submitter))
		se.Router.POST("/surveys/{id}/import", handlers.HandleImportExcel(app, saver))

		// ── Snapshots ────────────────────────────────────────────
		se.Router.GET("/surveys/{id}/snapshot", handlers.HandleSnapshotStatus(app))
		se.Router.POST("/surveys/{id}/snapshot", handlers.HandleSnapshotWrite(app, saver))
		se.Router.POST("/surveys/{id}/snapshot/restore", handlers.HandleSnapshotRestore(app, saver))
		se.Router.DELETE("/surveys/{id}/snapshot", handlers.HandleSnapshotDiscard(app, saver))

		// ── Submissions ──────────────────────────────────────────
		se.Router.GET("/surveys/{id}/submissions", handlers.HandleSubmissionList(app))

		// ── SOR catalog ──────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalogAll(app))
		se.Router.GET("/catalog/search", handlers.HandleCatalogSearch(app))
		se.Router.GET("/catalog/{section}", handlers.HandleCatalogSection(app))

		// Redirect home to the survey list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			if active := handlers.GetActiveSurvey(e.Request); active != nil {
				return e.Redirect(http.StatusFound, "/surveys/"+active.ID)
			}
			return e.Redirect(http.StatusFound, "/surveys")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
