package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/httpx"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

func ListCourses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := app.Courses.List(r.Context(), true)
		if err != nil {
			httpx.Err(w, r, "public.list_courses", err)
			return
		}
		render.JSON(w, r, map[string]any{"courses": courses})
	}
}

func GetCourse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		course, err := app.Courses.Get(r.Context(), id)
		if err == nil && !course.IsActive {
			err = store.ErrNotFound
		}
		if err != nil {
			httpx.Err(w, r, "public.get_course", err)
			return
		}
		render.JSON(w, r, course)
	}
}

// PublicGetForm serves an active registration form along with its rendered
// controls. Inactive forms read as not found.
func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		def, err := app.Forms.GetActive(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "public.get_form", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"form":     def,
			"controls": forms.Render(def, nil),
		})
	}
}

func PublicGetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		def, err := app.Surveys.GetActive(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "public.get_survey", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"survey":   def,
			"controls": forms.Render(def, nil),
		})
	}
}

// ArchiveAccess redeems an access code and, when valid, unlocks the archive
// listing.
func ArchiveAccess(app app.App) http.HandlerFunc {
	type accessRequest struct {
		Code string `json:"code" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := accessRequest{}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "malformed request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "access code is required")
			return
		}

		if err := app.Archive.Redeem(r.Context(), req.Code); err != nil {
			httpx.Err(w, r, "public.archive_access", err)
			return
		}

		items, err := app.Archive.ListItems(r.Context())
		if err != nil {
			httpx.Err(w, r, "public.archive_items", err)
			return
		}
		render.JSON(w, r, map[string]any{"items": items})
	}
}
