package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
)

// FormStore owns registration form definitions and their applicants.
type FormStore struct {
	db *sql.DB
}

func NewFormStore(db *sql.DB) *FormStore {
	return &FormStore{db}
}

// Create persists a new form definition together with its initial field set.
// Field names are derived from labels and display_order follows the slice.
func (s *FormStore) Create(ctx context.Context, def *forms.Definition) error {
	if strings.TrimSpace(def.Title) == "" {
		return invalidf("form title is required")
	}
	if err := normalizeFields(def.Fields); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO registration_form (course_id, title, description, is_active)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		def.CourseID, def.Title, def.Description, def.IsActive,
	).Scan(&def.ID)
	if err != nil {
		return errors.Wrap(err, "insert form")
	}

	err = insertFormFields(ctx, tx, def.ID, def.Fields)
	if err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// Patch carries optional metadata changes; nil members leave the column as is.
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Update mutates form metadata only; the field set is untouched.
func (s *FormStore) Update(ctx context.Context, id int64, p Patch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalidf("form title is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE registration_form SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			is_active = COALESCE(?, is_active)
		WHERE id = ?`,
		p.Title, p.Description, p.IsActive, id,
	)
	if err != nil {
		return errors.Wrap(err, "update form")
	}
	return requireRow(res)
}

// ReplaceFields swaps the whole field set: delete all rows, then reinsert in
// the given order. Field ids are not preserved across this call; historical
// applicants keep their answer maps as submitted and are never re-resolved
// against the new field set.
func (s *FormStore) ReplaceFields(ctx context.Context, formID int64, fields []forms.FieldDefinition) error {
	if err := normalizeFields(fields); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM registration_form WHERE id = ?`, formID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get form")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM form_field WHERE form_id = ?`, formID)
	if err != nil {
		return errors.Wrap(err, "delete fields")
	}

	err = insertFormFields(ctx, tx, formID, fields)
	if err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// Delete removes the form, its fields and all its applicants (FK cascade).
func (s *FormStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM registration_form WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete form")
	}
	return requireRow(res)
}

func (s *FormStore) Get(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, false)
}

// GetActive is the public-path lookup: inactive forms are indistinguishable
// from missing ones.
func (s *FormStore) GetActive(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, true)
}

func (s *FormStore) get(ctx context.Context, id int64, activeOnly bool) (*forms.Definition, error) {
	def := forms.Definition{}
	query := `
		SELECT id, course_id, title, description, is_active
		FROM registration_form WHERE id = ?`
	if activeOnly {
		query += ` AND is_active`
	}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&def.ID, &def.CourseID, &def.Title, &def.Description, &def.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get form")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, field_name, field_label, field_type, is_required, options,
			placeholder, display_order
		FROM form_field
		WHERE form_id = ?
		ORDER BY display_order, id`,
		id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get form fields")
	}
	defer rows.Close()

	for rows.Next() {
		f := forms.FieldDefinition{}
		var opts sql.NullString
		err = rows.Scan(&f.ID, &f.Name, &f.Label, &f.Type, &f.Required, &opts,
			&f.Placeholder, &f.DisplayOrder)
		if err != nil {
			return nil, errors.Wrap(err, "scan form field")
		}
		f.Options, err = decodeOptions(opts)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, f)
	}
	return &def, rows.Err()
}

func (s *FormStore) List(ctx context.Context) ([]forms.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_id, title, description, is_active
		FROM registration_form
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list forms")
	}
	defer rows.Close()

	defs := []forms.Definition{}
	for rows.Next() {
		def := forms.Definition{}
		err = rows.Scan(&def.ID, &def.CourseID, &def.Title, &def.Description, &def.IsActive)
		if err != nil {
			return nil, errors.Wrap(err, "scan form")
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func insertFormFields(ctx context.Context, tx *sql.Tx, formID int64, fields []forms.FieldDefinition) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field
			(form_id, field_name, field_label, field_type, is_required, options,
			placeholder, display_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare fields")
	}
	defer stmt.Close()

	names := forms.FieldNames(fields)
	for i, f := range fields {
		opts, err := encodeOptions(f.Options)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, formID, names[i], f.Label, f.Type, f.Required, opts, f.Placeholder, i)
		if err != nil {
			return errors.Wrap(err, "insert field")
		}
	}
	return nil
}

// normalizeFields applies the field invariants in place, surfacing the first
// violation as a validation error.
func normalizeFields(fields []forms.FieldDefinition) error {
	for i := range fields {
		if err := fields[i].Normalize(); err != nil {
			return invalidf("%s", err)
		}
	}
	return nil
}

func encodeOptions(opts []string) (any, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(err, "encode options")
	}
	return string(b), nil
}

func decodeOptions(opts sql.NullString) ([]string, error) {
	if !opts.Valid || opts.String == "" {
		return nil, nil
	}
	var out []string
	err := json.Unmarshal([]byte(opts.String), &out)
	return out, errors.Wrap(err, "decode options")
}

func encodeAnswers(answers map[string]any) (string, error) {
	if answers == nil {
		answers = map[string]any{}
	}
	b, err := json.Marshal(answers)
	return string(b), errors.Wrap(err, "encode answers")
}

func decodeAnswers(raw string) (map[string]any, error) {
	answers := map[string]any{}
	if raw == "" {
		return answers, nil
	}
	err := json.Unmarshal([]byte(raw), &answers)
	return answers, errors.Wrap(err, "decode answers")
}

// Contact is the identity captured alongside a registration.
type Contact struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

type Applicant struct {
	ID       int64  `json:"id"`
	FormID   int64  `json:"form_id"`
	CourseID *int64 `json:"course_id,omitempty"`
	Contact
	Answers          map[string]any `json:"form_responses"`
	Status           string         `json:"status"`
	RegistrationDate time.Time      `json:"registration_date"`
}

// Submit validates and persists one registration. The answer map is
// validated first, then a seat is reserved (course forms only), then the
// applicant row is written. Seat movement and the insert share one
// transaction.
func (s *FormStore) Submit(ctx context.Context, formID int64, contact Contact, answers map[string]any) (*Applicant, error) {
	def, err := s.GetActive(ctx, formID)
	if err != nil {
		return nil, err
	}

	if err = forms.Validate(def, answers); err != nil {
		return nil, err
	}

	raw, err := encodeAnswers(answers)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	if def.CourseID != nil {
		if err = reserveSeat(ctx, tx, *def.CourseID); err != nil {
			return nil, err
		}
	}

	a := Applicant{
		FormID:   formID,
		CourseID: def.CourseID,
		Contact:  contact,
		Answers:  answers,
		Status:   "pending",
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO applicant (form_id, course_id, full_name, email, phone, form_responses, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, registration_date`,
		a.FormID, a.CourseID, a.FullName, a.Email, a.Phone, raw, a.Status,
	).Scan(&a.ID, &a.RegistrationDate)
	if err != nil {
		return nil, errors.Wrap(err, "insert applicant")
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return &a, nil
}

// ListApplicants returns registrations newest first, optionally filtered by
// status.
func (s *FormStore) ListApplicants(ctx context.Context, formID int64, status string) ([]Applicant, error) {
	query := `
		SELECT id, form_id, course_id, full_name, email, phone, form_responses,
			status, registration_date
		FROM applicant
		WHERE form_id = ?`
	args := []any{formID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY registration_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list applicants")
	}
	defer rows.Close()

	applicants := []Applicant{}
	for rows.Next() {
		a := Applicant{}
		var raw string
		err = rows.Scan(&a.ID, &a.FormID, &a.CourseID, &a.FullName, &a.Email,
			&a.Phone, &raw, &a.Status, &a.RegistrationDate)
		if err != nil {
			return nil, errors.Wrap(err, "scan applicant")
		}
		a.Answers, err = decodeAnswers(raw)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

var applicantStatuses = map[string]bool{
	"pending":  true,
	"approved": true,
	"rejected": true,
}

// UpdateStatus sets an applicant's status. Admin-only; there are no
// automated transitions.
func (s *FormStore) UpdateStatus(ctx context.Context, applicantID int64, status string) error {
	if !applicantStatuses[status] {
		return invalidf("unknown status %q", status)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE applicant SET status = ? WHERE id = ?`, status, applicantID)
	if err != nil {
		return errors.Wrap(err, "update applicant status")
	}
	return requireRow(res)
}

// DeleteApplicant removes a registration and, for course forms, gives the
// seat back in the same transaction.
func (s *FormStore) DeleteApplicant(ctx context.Context, applicantID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	var courseID *int64
	err = tx.QueryRowContext(ctx,
		`SELECT course_id FROM applicant WHERE id = ?`, applicantID,
	).Scan(&courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get applicant")
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM applicant WHERE id = ?`, applicantID)
	if err != nil {
		return errors.Wrap(err, "delete applicant")
	}

	if courseID != nil {
		if err = releaseSeat(ctx, tx, *courseID); err != nil {
			return err
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// Summary replays the definition against all its applicants.
func (s *FormStore) Summary(ctx context.Context, formID int64) ([]forms.FieldSummary, error) {
	def, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}

	applicants, err := s.ListApplicants(ctx, formID, "")
	if err != nil {
		return nil, err
	}

	answers := make([]map[string]any, len(applicants))
	for i, a := range applicants {
		answers[i] = a.Answers
	}
	return forms.Summarize(def, answers), nil
}
