package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/httpx"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

type registerRequest struct {
	FormID   int64 `json:"form_id" validate:"required"`
	CourseID int64 `json:"course_id"` // informational; the form binds the course
	store.Contact
	FormResponses map[string]any `json:"form_responses"`
}

// Register is the public submission entry point for registration forms.
// The contact block is checked here, the dynamic answer map inside the
// store — both server-side, whatever the frontend already validated.
func Register(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := registerRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		if err = validate.Struct(req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, contactErrorMessage(err))
			return
		}

		applicant, err := app.Forms.Submit(r.Context(), req.FormID, req.Contact, req.FormResponses)
		if err != nil {
			httpx.Err(w, r, "public.register", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, applicant)
	}
}

// SubmitSurveyResponse accepts one survey response, anonymous unless an
// email is offered.
func SubmitSurveyResponse(app app.App) http.HandlerFunc {
	type responseRequest struct {
		RespondentEmail string         `json:"respondent_email" validate:"omitempty,email"`
		Responses       map[string]any `json:"responses"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := responseRequest{}
		if err = render.DecodeJSON(r.Body, &req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "malformed request body")
			return
		}
		if err = validate.Struct(req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "respondent email is not valid")
			return
		}

		resp, err := app.Surveys.SubmitResponse(r.Context(), surveyID, req.RespondentEmail, req.Responses)
		if err != nil {
			httpx.Err(w, r, "public.submit_survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

func contactErrorMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid registration data"
	}
	switch errs[0].Field() {
	case "FormID":
		return "form_id is required"
	case "FullName":
		return "full name is required"
	case "Email":
		return "a valid email is required"
	case "Phone":
		return "phone is required"
	}
	return "invalid registration data"
}
