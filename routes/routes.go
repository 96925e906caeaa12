package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/routes/middlewares"
)

var validate = validator.New()

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.Config.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/courses", ListCourses(app))
	api.Get(`/courses/{id:^\d+$}`, GetCourse(app))
	api.Get(`/forms/{id:^\d+$}`, PublicGetForm(app))
	api.Post("/register", Register(app))
	api.Get(`/surveys/{id:^\d+$}`, PublicGetSurvey(app))
	api.Post(`/surveys/{id:^\d+$}/responses`, SubmitSurveyResponse(app))
	api.Post("/archive/access", ArchiveAccess(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.Config.TokenSecret))

		// CRUD courses
		r.Post("/courses", CreateCourse(app))
		r.Get("/courses", AdminListCourses(app))
		r.Put(`/courses/{id:^\d+$}`, UpdateCourse(app))
		r.Delete(`/courses/{id:^\d+$}`, DeleteCourse(app))

		// CRUD registration forms + applicants
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get(`/forms/{id:^\d+$}`, GetForm(app))
		r.Put(`/forms/{id:^\d+$}`, UpdateForm(app))
		r.Put(`/forms/{id:^\d+$}/fields`, ReplaceFormFields(app))
		r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))
		r.Get(`/forms/{id:^\d+$}/applicants`, ListApplicants(app))
		r.Get(`/forms/{id:^\d+$}/summary`, FormSummary(app))
		r.Put(`/applicants/{id:^\d+$}/status`, UpdateApplicantStatus(app))
		r.Delete(`/applicants/{id:^\d+$}`, DeleteApplicant(app))

		// CRUD surveys + responses
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get(`/surveys/{id:^\d+$}`, GetSurvey(app))
		r.Put(`/surveys/{id:^\d+$}`, UpdateSurvey(app))
		r.Put(`/surveys/{id:^\d+$}/questions`, ReplaceSurveyQuestions(app))
		r.Delete(`/surveys/{id:^\d+$}`, DeleteSurvey(app))
		r.Get(`/surveys/{id:^\d+$}/responses`, ListSurveyResponses(app))
		r.Get(`/surveys/{id:^\d+$}/summary`, SurveySummary(app))
		r.Delete(`/responses/{id:^\d+$}`, DeleteSurveyResponse(app))

		// CRUD report templates + entries
		r.Post("/reports", CreateReportTemplate(app))
		r.Get("/reports", ListReportTemplates(app))
		r.Get(`/reports/{id:^\d+$}`, GetReportTemplate(app))
		r.Put(`/reports/{id:^\d+$}`, UpdateReportTemplate(app))
		r.Put(`/reports/{id:^\d+$}/fields`, ReplaceReportFields(app))
		r.Delete(`/reports/{id:^\d+$}`, DeleteReportTemplate(app))
		r.Post(`/reports/{id:^\d+$}/entries`, CreateReportEntry(app))
		r.Get(`/reports/{id:^\d+$}/entries`, ListReportEntries(app))
		r.Get(`/reports/{id:^\d+$}/summary`, ReportSummary(app))
		r.Delete(`/entries/{id:^\d+$}`, DeleteReportEntry(app))

		// archive items + access codes
		r.Post("/archive/items", CreateArchiveItem(app))
		r.Get("/archive/items", AdminListArchiveItems(app))
		r.Delete(`/archive/items/{id:^\d+$}`, DeleteArchiveItem(app))
		r.Post("/archive/codes", CreateAccessCode(app))
		r.Get("/archive/codes", ListAccessCodes(app))
		r.Delete("/archive/codes/{code}", RevokeAccessCode(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
