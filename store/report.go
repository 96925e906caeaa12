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

// ReportStore owns custom report templates. Unlike forms and surveys the
// field list lives as one JSON array on the template row, and entries key
// their data by field id.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db}
}

func (s *ReportStore) Create(ctx context.Context, def *forms.Definition) error {
	if strings.TrimSpace(def.Title) == "" {
		return invalidf("template name is required")
	}
	raw, err := encodeTemplateFields(def.Fields)
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO report_template (name, description, fields, is_active)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		def.Title, def.Description, raw, def.IsActive,
	).Scan(&def.ID)
	return errors.Wrap(err, "insert template")
}

func (s *ReportStore) Update(ctx context.Context, id int64, p Patch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalidf("template name is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE report_template SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			is_active = COALESCE(?, is_active)
		WHERE id = ?`,
		p.Title, p.Description, p.IsActive, id,
	)
	if err != nil {
		return errors.Wrap(err, "update template")
	}
	return requireRow(res)
}

// ReplaceFields rewrites the template's field array wholesale; field ids are
// reassigned by position, existing entries keep their data maps untouched.
func (s *ReportStore) ReplaceFields(ctx context.Context, templateID int64, fields []forms.FieldDefinition) error {
	raw, err := encodeTemplateFields(fields)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE report_template SET fields = ? WHERE id = ?`, raw, templateID)
	if err != nil {
		return errors.Wrap(err, "update template fields")
	}
	return requireRow(res)
}

func (s *ReportStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM report_template WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete template")
	}
	return requireRow(res)
}

func (s *ReportStore) Get(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, false)
}

func (s *ReportStore) GetActive(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, true)
}

func (s *ReportStore) get(ctx context.Context, id int64, activeOnly bool) (*forms.Definition, error) {
	def := forms.Definition{}
	var raw string
	query := `SELECT id, name, description, fields, is_active FROM report_template WHERE id = ?`
	if activeOnly {
		query += ` AND is_active`
	}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&def.ID, &def.Title, &def.Description, &raw, &def.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get template")
	}

	err = json.Unmarshal([]byte(raw), &def.Fields)
	if err != nil {
		return nil, errors.Wrap(err, "decode template fields")
	}
	return &def, nil
}

func (s *ReportStore) List(ctx context.Context) ([]forms.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, is_active
		FROM report_template
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list templates")
	}
	defer rows.Close()

	defs := []forms.Definition{}
	for rows.Next() {
		def := forms.Definition{}
		err = rows.Scan(&def.ID, &def.Title, &def.Description, &def.IsActive)
		if err != nil {
			return nil, errors.Wrap(err, "scan template")
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// encodeTemplateFields normalizes and numbers the fields by position before
// flattening them to JSON.
func encodeTemplateFields(fields []forms.FieldDefinition) (string, error) {
	if fields == nil {
		fields = []forms.FieldDefinition{}
	}
	if err := normalizeFields(fields); err != nil {
		return "", err
	}
	for i := range fields {
		fields[i].ID = int64(i + 1)
		fields[i].Name = ""
		fields[i].DisplayOrder = i
	}
	b, err := json.Marshal(fields)
	return string(b), errors.Wrap(err, "encode template fields")
}

type ReportEntry struct {
	ID         int64          `json:"id"`
	TemplateID int64          `json:"template_id"`
	Data       map[string]any `json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SubmitEntry validates one data map against the active template and stores it.
func (s *ReportStore) SubmitEntry(ctx context.Context, templateID int64, data map[string]any) (*ReportEntry, error) {
	def, err := s.GetActive(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if err = forms.Validate(def, data); err != nil {
		return nil, err
	}

	raw, err := encodeAnswers(data)
	if err != nil {
		return nil, err
	}

	e := ReportEntry{TemplateID: templateID, Data: data}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO report_entry (template_id, data)
		VALUES (?, ?)
		RETURNING id, created_at`,
		templateID, raw,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert entry")
	}
	return &e, nil
}

func (s *ReportStore) ListEntries(ctx context.Context, templateID int64) ([]ReportEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, data, created_at
		FROM report_entry
		WHERE template_id = ?
		ORDER BY created_at DESC, id DESC`,
		templateID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list entries")
	}
	defer rows.Close()

	entries := []ReportEntry{}
	for rows.Next() {
		e := ReportEntry{}
		var raw string
		err = rows.Scan(&e.ID, &e.TemplateID, &raw, &e.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan entry")
		}
		e.Data, err = decodeAnswers(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *ReportStore) DeleteEntry(ctx context.Context, entryID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM report_entry WHERE id = ?`, entryID)
	if err != nil {
		return errors.Wrap(err, "delete entry")
	}
	return requireRow(res)
}

func (s *ReportStore) Summary(ctx context.Context, templateID int64) ([]forms.FieldSummary, error) {
	def, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ListEntries(ctx, templateID)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]any, len(entries))
	for i, e := range entries {
		data[i] = e.Data
	}
	return forms.Summarize(def, data), nil
}
