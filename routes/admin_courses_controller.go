package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/httpx"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

func CreateCourse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		course := store.Course{}
		if err := render.DecodeJSON(r.Body, &course); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Courses.Create(r.Context(), &course); err != nil {
			httpx.Err(w, r, "admin.create_course", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, course)
	}
}

func AdminListCourses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := app.Courses.List(r.Context(), false)
		if err != nil {
			httpx.Err(w, r, "admin.list_courses", err)
			return
		}
		render.JSON(w, r, map[string]any{"courses": courses})
	}
}

func UpdateCourse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		course := store.Course{}
		if err = render.DecodeJSON(r.Body, &course); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		course.ID = id

		if err = app.Courses.Update(r.Context(), &course); err != nil {
			httpx.Err(w, r, "admin.update_course", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteCourse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Courses.Delete(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_course", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
