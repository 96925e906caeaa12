package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/httpx"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

func CreateReportTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def := forms.Definition{}
		if err := render.DecodeJSON(r.Body, &def); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Reports.Create(r.Context(), &def); err != nil {
			httpx.Err(w, r, "admin.create_report_template", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{"id": def.ID})
	}
}

func ListReportTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := app.Reports.List(r.Context())
		if err != nil {
			httpx.Err(w, r, "admin.list_report_templates", err)
			return
		}
		render.JSON(w, r, map[string]any{"templates": defs})
	}
}

func GetReportTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		def, err := app.Reports.Get(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.get_report_template", err)
			return
		}
		render.JSON(w, r, def)
	}
}

func UpdateReportTemplate(app app.App) http.HandlerFunc {
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

		if err = app.Reports.Update(r.Context(), id, patch); err != nil {
			httpx.Err(w, r, "admin.update_report_template", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReplaceReportFields(app app.App) http.HandlerFunc {
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

		if err = app.Reports.ReplaceFields(r.Context(), id, req.Fields); err != nil {
			httpx.Err(w, r, "admin.replace_report_fields", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteReportTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Reports.Delete(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_report_template", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateReportEntry(app app.App) http.HandlerFunc {
	type entryRequest struct {
		Data map[string]any `json:"data"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := entryRequest{}
		if err = render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		entry, err := app.Reports.SubmitEntry(r.Context(), id, req.Data)
		if err != nil {
			httpx.Err(w, r, "admin.create_report_entry", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, entry)
	}
}

func ListReportEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		entries, err := app.Reports.ListEntries(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.list_report_entries", err)
			return
		}
		render.JSON(w, r, map[string]any{"entries": entries})
	}
}

func ReportSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		summary, err := app.Reports.Summary(r.Context(), id)
		if err != nil {
			httpx.Err(w, r, "admin.report_summary", err)
			return
		}
		render.JSON(w, r, map[string]any{"summary": summary})
	}
}

func DeleteReportEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Reports.DeleteEntry(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_report_entry", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateArchiveItem(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := store.ArchiveItem{}
		if err := render.DecodeJSON(r.Body, &item); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Archive.CreateItem(r.Context(), &item); err != nil {
			httpx.Err(w, r, "admin.create_archive_item", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, item)
	}
}

func AdminListArchiveItems(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := app.Archive.ListItems(r.Context())
		if err != nil {
			httpx.Err(w, r, "admin.list_archive_items", err)
			return
		}
		render.JSON(w, r, map[string]any{"items": items})
	}
}

func DeleteArchiveItem(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		if err = app.Archive.DeleteItem(r.Context(), id); err != nil {
			httpx.Err(w, r, "admin.delete_archive_item", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateAccessCode(app app.App) http.HandlerFunc {
	type codeRequest struct {
		Label string `json:"label"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := codeRequest{}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		code, err := app.Archive.CreateCode(r.Context(), req.Label)
		if err != nil {
			httpx.Err(w, r, "admin.create_access_code", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, code)
	}
}

func ListAccessCodes(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := app.Archive.ListCodes(r.Context())
		if err != nil {
			httpx.Err(w, r, "admin.list_access_codes", err)
			return
		}
		render.JSON(w, r, map[string]any{"codes": codes})
	}
}

func RevokeAccessCode(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if err := app.Archive.RevokeCode(r.Context(), code); err != nil {
			httpx.Err(w, r, "admin.revoke_access_code", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
