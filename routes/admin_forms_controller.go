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

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def := forms.Definition{}
		if err := render.DecodeJSON(r.Body, &def); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Forms.Create(r.Context(), &def); err != nil {
			httpx.Err(w, r, "admin.create_form", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{"id": def.ID})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := app.Forms.List(r.Context())
		if err != nil {
			httpx.Err(w, r, "admin.list_forms", err)
			return
		}
		render.JSON(w, r, map[string]any{"forms": defs})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		def, err := app.Forms.Get(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.get_form", err)
			return
		}
		render.JSON(w, r, def)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		patch := store.Patch{}
		if err = render.DecodeJSON(r.Body, &patch); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err = app.Forms.Update(r.Context(), id, patch); err != nil {
			httpx.Err(w, r, "admin.update_form", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReplaceFormFields swaps the whole field set of a form. The admin builder
// always saves the full list, so identifiers are regenerated on every save.
func ReplaceFormFields(app app.App) http.HandlerFunc {
	type fieldsRequest struct {
		Fields []forms.FieldDefinition `json:"fields"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := fieldsRequest{}
		if err = render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err = app.Forms.ReplaceFields(r.Context(), id, req.Fields); err != nil {
			httpx.Err(w, r, "admin.replace_form_fields", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Forms.Delete(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_form", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListApplicants(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		applicants, err := app.Forms.ListApplicants(r.Context(), id, r.URL.Query().Get("status"))
		if err != nil {
			httpx.Err(w, r, "admin.list_applicants", err)
			return
		}
		render.JSON(w, r, map[string]any{"applicants": applicants})
	}
}

func FormSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		summary, err := app.Forms.Summary(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.form_summary", err)
			return
		}
		render.JSON(w, r, map[string]any{"summary": summary})
	}
}

func UpdateApplicantStatus(app app.App) http.HandlerFunc {
	type statusRequest struct {
		Status string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := statusRequest{}
		if err = render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err = app.Forms.UpdateStatus(r.Context(), id, req.Status); err != nil {
			httpx.Err(w, r, "admin.update_applicant_status", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteApplicant(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Forms.DeleteApplicant(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_applicant", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
