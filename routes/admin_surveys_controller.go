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

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def := forms.Definition{}
		if err := render.DecodeJSON(r.Body, &def); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Surveys.Create(r.Context(), &def); err != nil {
			httpx.Err(w, r, "admin.create_survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{"id": def.ID})
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := app.Surveys.List(r.Context())
		if err != nil {
			httpx.Err(w, r, "admin.list_surveys", err)
			return
		}
		render.JSON(w, r, map[string]any{"surveys": defs})
	}
}

func GetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		def, err := app.Surveys.Get(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.get_survey", err)
			return
		}
		render.JSON(w, r, def)
	}
}

func UpdateSurvey(app app.App) http.HandlerFunc {
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

		if err = app.Surveys.Update(r.Context(), id, patch); err != nil {
			httpx.Err(w, r, "admin.update_survey", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReplaceSurveyQuestions(app app.App) http.HandlerFunc {
	type questionsRequest struct {
		Questions []forms.FieldDefinition `json:"questions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := questionsRequest{}
		if err = render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err = app.Surveys.ReplaceQuestions(r.Context(), id, req.Questions); err != nil {
			httpx.Err(w, r, "admin.replace_survey_questions", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Surveys.Delete(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_survey", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		responses, err := app.Surveys.ListResponses(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.list_survey_responses", err)
			return
		}
		render.JSON(w, r, map[string]any{"responses": responses})
	}
}

func SurveySummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		summary, err := app.Surveys.Summary(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.survey_summary", err)
			return
		}
		render.JSON(w, r, map[string]any{"summary": summary})
	}
}

func DeleteSurveyResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Surveys.DeleteResponse(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_survey_response", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
