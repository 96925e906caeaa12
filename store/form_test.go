package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
)

func registrationFields() []forms.FieldDefinition {
	return []forms.FieldDefinition{
		{Label: "الاسم الكامل", Type: forms.TypeText, Required: true},
		{Label: "البريد الإلكتروني", Type: forms.TypeEmail, Required: true},
		{Label: "رقم الجوال", Type: forms.TypePhone, Required: true},
		{Label: "المستوى", Type: forms.TypeSelect, Options: []string{"مبتدئ", "متقدم"}},
	}
}

func newTestForm(t *testing.T, store *FormStore, courseID *int64, fields []forms.FieldDefinition) *forms.Definition {
	t.Helper()

	def := &forms.Definition{
		Title:    "نموذج التسجيل",
		IsActive: true,
		CourseID: courseID,
		Fields:   fields,
	}
	require.NoError(t, store.Create(context.Background(), def))
	return def
}

func testContact() Contact {
	return Contact{FullName: "أحمد", Email: "ahmed@example.com", Phone: "0501234567"}
}

func TestFormCreateGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	in := registrationFields()
	def := newTestForm(t, formStore, nil, in)

	got, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, "نموذج التسجيل", got.Title)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.CourseID)

	require.Len(t, got.Fields, len(in))
	for i, f := range got.Fields {
		assert.Equal(t, in[i].Label, f.Label, "field %d", i)
		assert.Equal(t, in[i].Type, f.Type, "field %d", i)
		assert.Equal(t, in[i].Required, f.Required, "field %d", i)
		assert.Equal(t, in[i].Options, f.Options, "field %d", i)
		assert.Equal(t, i, f.DisplayOrder, "field %d", i)
		assert.NotEmpty(t, f.Name, "field %d", i)
	}
}

func TestFormCreateValidation(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	err := formStore.Create(ctx, &forms.Definition{Title: " "})
	assert.ErrorIs(t, err, ErrValidation)

	err = formStore.Create(ctx, &forms.Definition{
		Title:  "X",
		Fields: []forms.FieldDefinition{{Type: forms.TypeText}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFormUpdateMetadataOnly(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, registrationFields())

	title := "عنوان جديد"
	inactive := false
	err := formStore.Update(ctx, def.ID, Patch{Title: &title, IsActive: &inactive})
	require.NoError(t, err)

	got, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.False(t, got.IsActive)
	assert.Len(t, got.Fields, len(registrationFields()))

	assert.ErrorIs(t, formStore.Update(ctx, 999, Patch{Title: &title}), ErrNotFound)
}

func TestReplaceFieldsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, registrationFields())
	before, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)

	replacement := []forms.FieldDefinition{
		{Label: "العمر", Type: forms.TypeNumber, Required: true},
		{Label: "ملاحظات", Type: forms.TypeTextarea},
	}
	require.NoError(t, formStore.ReplaceFields(ctx, def.ID, replacement))

	after, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)
	require.Len(t, after.Fields, 2)
	for i, f := range after.Fields {
		assert.Equal(t, replacement[i].Label, f.Label)
		assert.Equal(t, replacement[i].Type, f.Type)
		assert.Equal(t, replacement[i].Required, f.Required)
		assert.Equal(t, i, f.DisplayOrder)
	}

	// identifiers are regenerated, not preserved
	for _, old := range before.Fields {
		for _, f := range after.Fields {
			assert.NotEqual(t, old.ID, f.ID)
		}
	}

	assert.ErrorIs(t, formStore.ReplaceFields(ctx, 999, replacement), ErrNotFound)
}

// Historical submissions keep their answer maps as submitted even after the
// field set changed under them.
func TestSubmissionsSurviveFieldReplace(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, registrationFields())
	got, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)

	answers := map[string]any{}
	for _, f := range got.Fields {
		answers[f.Key()] = "قيمة"
	}
	_, err = formStore.Submit(ctx, def.ID, testContact(), answers)
	require.NoError(t, err)

	require.NoError(t, formStore.ReplaceFields(ctx, def.ID, []forms.FieldDefinition{
		{Label: "حقل جديد", Type: forms.TypeText},
	}))

	applicants, err := formStore.ListApplicants(ctx, def.ID, "")
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Len(t, applicants[0].Answers, len(got.Fields))
}

func TestSubmitMissingRequiredField(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, registrationFields())

	_, err := formStore.Submit(ctx, def.ID, testContact(), map[string]any{
		"الاسم_الكامل": "أحمد",
		"رقم_الجوال":   "0501234567",
	})

	var vErr *forms.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Missing, "البريد الإلكتروني")

	// nothing persisted
	applicants, err := formStore.ListApplicants(ctx, def.ID, "")
	require.NoError(t, err)
	assert.Empty(t, applicants)
}

func TestSubmitInactiveFormNotFound(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, nil)
	inactive := false
	require.NoError(t, formStore.Update(ctx, def.ID, Patch{IsActive: &inactive}))

	_, err := formStore.Submit(ctx, def.ID, testContact(), nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = formStore.Submit(ctx, 999, testContact(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitDecrementsSeats(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	formStore := NewFormStore(db)
	ctx := context.Background()

	c := newTestCourse(t, courses, 3)
	def := newTestForm(t, formStore, &c.ID, nil)

	// N submissions, M deletions: seats end at total - N + M
	var ids []int64
	for i := 0; i < 3; i++ {
		a, err := formStore.Submit(ctx, def.ID, testContact(), nil)
		require.NoError(t, err)
		assert.Equal(t, "pending", a.Status)
		ids = append(ids, a.ID)
	}
	for _, id := range ids[:2] {
		require.NoError(t, formStore.DeleteApplicant(ctx, id))
	}

	got, err := courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3-3+2, got.AvailableSeats)
}

func TestSubmitLastSeatConcurrently(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	formStore := NewFormStore(db)
	ctx := context.Background()

	c := newTestCourse(t, courses, 1)
	def := newTestForm(t, formStore, &c.ID, nil)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := formStore.Submit(ctx, def.ID, testContact(), nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, noCapacity := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrNoCapacity):
			noCapacity++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, noCapacity)

	got, err := courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSeats)
}

func TestUpdateApplicantStatus(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, nil)
	a, err := formStore.Submit(ctx, def.ID, testContact(), nil)
	require.NoError(t, err)

	require.NoError(t, formStore.UpdateStatus(ctx, a.ID, "approved"))

	applicants, err := formStore.ListApplicants(ctx, def.ID, "approved")
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "approved", applicants[0].Status)

	assert.ErrorIs(t, formStore.UpdateStatus(ctx, a.ID, "archived"), ErrValidation)
	assert.ErrorIs(t, formStore.UpdateStatus(ctx, 999, "approved"), ErrNotFound)
}

func TestDeleteFormCascadesSubmissions(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, nil)
	for i := 0; i < 5; i++ {
		_, err := formStore.Submit(ctx, def.ID, testContact(), nil)
		require.NoError(t, err)
	}

	require.NoError(t, formStore.Delete(ctx, def.ID))

	_, err := formStore.Get(ctx, def.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	applicants, err := formStore.ListApplicants(ctx, def.ID, "")
	require.NoError(t, err)
	assert.Empty(t, applicants)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM applicant`).Scan(&count))
	assert.Zero(t, count)
}

func TestFormSummary(t *testing.T) {
	db := newTestDB(t)
	formStore := NewFormStore(db)
	ctx := context.Background()

	def := newTestForm(t, formStore, nil, []forms.FieldDefinition{
		{Label: "التقييم", Type: forms.TypeRating},
	})
	got, err := formStore.Get(ctx, def.ID)
	require.NoError(t, err)
	key := got.Fields[0].Key()

	for _, v := range []float64{5, 4, 3} {
		_, err = formStore.Submit(ctx, def.ID, testContact(), map[string]any{key: v})
		require.NoError(t, err)
	}

	summary, err := formStore.Summary(ctx, def.ID)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 4.0, summary[0].Average)
	assert.Equal(t, 3, summary[0].Count)
}
