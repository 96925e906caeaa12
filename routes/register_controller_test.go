package routes

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/app"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/config"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/database"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

func newTestApp(t *testing.T) app.App {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_fk=1")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	return app.New(db, nil, config.Config{TokenSecret: "test"})
}

// seedCourseForm creates a course with the given seats and an active
// registration form with one required email field, returning the form and
// the generated field key.
func seedCourseForm(t *testing.T, a app.App, seats int) (*forms.Definition, string) {
	t.Helper()
	ctx := context.Background()

	course := &store.Course{Title: "دورة", TotalSeats: seats, IsActive: true}
	require.NoError(t, a.Courses.Create(ctx, course))

	def := &forms.Definition{
		Title:    "نموذج التسجيل",
		IsActive: true,
		CourseID: &course.ID,
		Fields: []forms.FieldDefinition{
			{Label: "البريد الإلكتروني", Type: forms.TypeEmail, Required: true},
		},
	}
	require.NoError(t, a.Forms.Create(ctx, def))

	def, err := a.Forms.Get(ctx, def.ID)
	require.NoError(t, err)
	return def, def.Fields[0].Key()
}

func postRegister(t *testing.T, a app.App, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/register", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	Register(a)(rec, req)
	return rec
}

func TestRegisterCreated(t *testing.T) {
	a := newTestApp(t)
	def, key := seedCourseForm(t, a, 10)

	rec := postRegister(t, a, map[string]any{
		"form_id":        def.ID,
		"full_name":      "أحمد",
		"email":          "ahmed@example.com",
		"phone":          "0501234567",
		"form_responses": map[string]any{key: "ahmed@example.com"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var applicant store.Applicant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applicant))
	assert.Equal(t, "pending", applicant.Status)
	assert.NotZero(t, applicant.ID)
}

func TestRegisterMissingContact(t *testing.T) {
	a := newTestApp(t)
	def, key := seedCourseForm(t, a, 10)

	rec := postRegister(t, a, map[string]any{
		"form_id":        def.ID,
		"full_name":      "أحمد",
		"phone":          "0501234567",
		"form_responses": map[string]any{key: "x@y.z"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRegisterMissingRequiredFieldNamesLabel(t *testing.T) {
	a := newTestApp(t)
	def, _ := seedCourseForm(t, a, 10)

	rec := postRegister(t, a, map[string]any{
		"form_id":   def.ID,
		"full_name": "أحمد",
		"email":     "ahmed@example.com",
		"phone":     "0501234567",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "البريد الإلكتروني")
}

func TestRegisterUnknownForm(t *testing.T) {
	a := newTestApp(t)

	rec := postRegister(t, a, map[string]any{
		"form_id":   999,
		"full_name": "أحمد",
		"email":     "ahmed@example.com",
		"phone":     "0501234567",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterNoSeats(t *testing.T) {
	a := newTestApp(t)
	def, key := seedCourseForm(t, a, 1)

	body := map[string]any{
		"form_id":        def.ID,
		"full_name":      "أحمد",
		"email":          "ahmed@example.com",
		"phone":          "0501234567",
		"form_responses": map[string]any{key: "a@b.c"},
	}

	require.Equal(t, http.StatusCreated, postRegister(t, a, body).Code)

	rec := postRegister(t, a, body)
	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no seats available", resp["error"])
}

func TestPublicGetFormHidesInactive(t *testing.T) {
	a := newTestApp(t)
	def, _ := seedCourseForm(t, a, 1)

	router := chi.NewRouter()
	router.Get(`/api/forms/{id:^\d+$}`, PublicGetForm(a))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/forms/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "controls")

	inactive := false
	require.NoError(t, a.Forms.Update(context.Background(), def.ID, store.Patch{IsActive: &inactive}))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/forms/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
