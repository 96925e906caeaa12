package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/config"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

// App is the explicit dependency container threaded through every handler
// constructor. Nothing in this codebase reaches for a package-level client.
type App struct {
	DB *sql.DB
	*oauth.BearerServer
	Config config.Config

	Courses *store.CourseStore
	Forms   *store.FormStore
	Surveys *store.SurveyStore
	Reports *store.ReportStore
	Archive *store.ArchiveStore
}

func New(db *sql.DB, bearerServer *oauth.BearerServer, cfg config.Config) App {
	return App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
		Courses:      store.NewCourseStore(db),
		Forms:        store.NewFormStore(db),
		Surveys:      store.NewSurveyStore(db),
		Reports:      store.NewReportStore(db),
		Archive:      store.NewArchiveStore(db),
	}
}
