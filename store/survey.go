package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
)

// SurveyStore owns standalone surveys. Questions share the form engine's
// field model; responses are keyed by question id, as surveys carry no
// generated field names.
type SurveyStore struct {
	db *sql.DB
}

func NewSurveyStore(db *sql.DB) *SurveyStore {
	return &SurveyStore{db}
}

func (s *SurveyStore) Create(ctx context.Context, def *forms.Definition) error {
	if strings.TrimSpace(def.Title) == "" {
		return invalidf("survey title is required")
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
		INSERT INTO survey (title, description, is_active)
		VALUES (?, ?, ?)
		RETURNING id`,
		def.Title, def.Description, def.IsActive,
	).Scan(&def.ID)
	if err != nil {
		return errors.Wrap(err, "insert survey")
	}

	err = insertQuestions(ctx, tx, def.ID, def.Fields)
	if err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit")
}

func (s *SurveyStore) Update(ctx context.Context, id int64, p Patch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalidf("survey title is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE survey SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			is_active = COALESCE(?, is_active)
		WHERE id = ?`,
		p.Title, p.Description, p.IsActive, id,
	)
	if err != nil {
		return errors.Wrap(err, "update survey")
	}
	return requireRow(res)
}

// ReplaceQuestions is the survey flavor of the full field replace: question
// ids are regenerated and stored responses are left untouched.
func (s *SurveyStore) ReplaceQuestions(ctx context.Context, surveyID int64, questions []forms.FieldDefinition) error {
	if err := normalizeFields(questions); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM survey WHERE id = ?`, surveyID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get survey")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM survey_question WHERE survey_id = ?`, surveyID)
	if err != nil {
		return errors.Wrap(err, "delete questions")
	}

	err = insertQuestions(ctx, tx, surveyID, questions)
	if err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit")
}

func (s *SurveyStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete survey")
	}
	return requireRow(res)
}

func (s *SurveyStore) Get(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, false)
}

func (s *SurveyStore) GetActive(ctx context.Context, id int64) (*forms.Definition, error) {
	return s.get(ctx, id, true)
}

func (s *SurveyStore) get(ctx context.Context, id int64, activeOnly bool) (*forms.Definition, error) {
	def := forms.Definition{}
	query := `SELECT id, title, description, is_active FROM survey WHERE id = ?`
	if activeOnly {
		query += ` AND is_active`
	}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&def.ID, &def.Title, &def.Description, &def.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get survey")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_text, question_type, options, is_required, display_order
		FROM survey_question
		WHERE survey_id = ?
		ORDER BY display_order, id`,
		id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get questions")
	}
	defer rows.Close()

	for rows.Next() {
		f := forms.FieldDefinition{}
		var opts sql.NullString
		err = rows.Scan(&f.ID, &f.Label, &f.Type, &opts, &f.Required, &f.DisplayOrder)
		if err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		f.Options, err = decodeOptions(opts)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, f)
	}
	return &def, rows.Err()
}

func (s *SurveyStore) List(ctx context.Context) ([]forms.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, is_active
		FROM survey
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list surveys")
	}
	defer rows.Close()

	defs := []forms.Definition{}
	for rows.Next() {
		def := forms.Definition{}
		err = rows.Scan(&def.ID, &def.Title, &def.Description, &def.IsActive)
		if err != nil {
			return nil, errors.Wrap(err, "scan survey")
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func insertQuestions(ctx context.Context, tx *sql.Tx, surveyID int64, questions []forms.FieldDefinition) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_question
			(survey_id, question_text, question_type, options, is_required, display_order)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare questions")
	}
	defer stmt.Close()

	for i, q := range questions {
		opts, err := encodeOptions(q.Options)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, surveyID, q.Label, q.Type, opts, q.Required, i)
		if err != nil {
			return errors.Wrap(err, "insert question")
		}
	}
	return nil
}

type SurveyResponse struct {
	ID              int64          `json:"id"`
	SurveyID        int64          `json:"survey_id"`
	RespondentEmail string         `json:"respondent_email,omitempty"`
	Answers         map[string]any `json:"responses"`
	SubmittedAt     time.Time      `json:"submitted_at"`
}

// SubmitResponse validates and stores one response against the active survey.
func (s *SurveyStore) SubmitResponse(ctx context.Context, surveyID int64, respondentEmail string, answers map[string]any) (*SurveyResponse, error) {
	def, err := s.GetActive(ctx, surveyID)
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

	resp := SurveyResponse{
		SurveyID:        surveyID,
		RespondentEmail: respondentEmail,
		Answers:         answers,
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO survey_response (survey_id, respondent_email, responses)
		VALUES (?, ?, ?)
		RETURNING id, submitted_at`,
		surveyID, respondentEmail, raw,
	).Scan(&resp.ID, &resp.SubmittedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert response")
	}
	return &resp, nil
}

func (s *SurveyStore) ListResponses(ctx context.Context, surveyID int64) ([]SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, respondent_email, responses, submitted_at
		FROM survey_response
		WHERE survey_id = ?
		ORDER BY submitted_at DESC, id DESC`,
		surveyID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	defer rows.Close()

	responses := []SurveyResponse{}
	for rows.Next() {
		resp := SurveyResponse{}
		var raw string
		err = rows.Scan(&resp.ID, &resp.SurveyID, &resp.RespondentEmail, &raw, &resp.SubmittedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		resp.Answers, err = decodeAnswers(raw)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (s *SurveyStore) DeleteResponse(ctx context.Context, responseID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey_response WHERE id = ?`, responseID)
	if err != nil {
		return errors.Wrap(err, "delete response")
	}
	return requireRow(res)
}

// Summary recomputes per-question statistics over all responses.
func (s *SurveyStore) Summary(ctx context.Context, surveyID int64) ([]forms.FieldSummary, error) {
	def, err := s.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	responses, err := s.ListResponses(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	answers := make([]map[string]any, len(responses))
	for i, r := range responses {
		answers[i] = r.Answers
	}
	return forms.Summarize(def, answers), nil
}
