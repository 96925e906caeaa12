package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ArchiveStore owns the access-code-gated archive: media items plus the
// codes that unlock them. Codes are opaque UUIDs handed out by an admin.
type ArchiveStore struct {
	db *sql.DB
}

func NewArchiveStore(db *sql.DB) *ArchiveStore {
	return &ArchiveStore{db}
}

type ArchiveItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type AccessCode struct {
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *ArchiveStore) CreateItem(ctx context.Context, item *ArchiveItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return invalidf("item title is required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO archive_item (title, description, file_url)
		VALUES (?, ?, ?)
		RETURNING id, created_at`,
		item.Title, item.Description, item.FileURL,
	).Scan(&item.ID, &item.CreatedAt)
	return errors.Wrap(err, "insert archive item")
}

func (s *ArchiveStore) ListItems(ctx context.Context) ([]ArchiveItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, file_url, created_at
		FROM archive_item
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list archive items")
	}
	defer rows.Close()

	items := []ArchiveItem{}
	for rows.Next() {
		item := ArchiveItem{}
		err = rows.Scan(&item.ID, &item.Title, &item.Description, &item.FileURL, &item.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan archive item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *ArchiveStore) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM archive_item WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete archive item")
	}
	return requireRow(res)
}

// CreateCode mints a fresh access code.
func (s *ArchiveStore) CreateCode(ctx context.Context, label string) (*AccessCode, error) {
	code := AccessCode{Code: uuid.NewString(), Label: label, IsActive: true}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO access_code (code, label) VALUES (?, ?)
		RETURNING created_at`,
		code.Code, code.Label,
	).Scan(&code.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert access code")
	}
	return &code, nil
}

func (s *ArchiveStore) ListCodes(ctx context.Context) ([]AccessCode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, label, is_active, created_at
		FROM access_code
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list access codes")
	}
	defer rows.Close()

	codes := []AccessCode{}
	for rows.Next() {
		c := AccessCode{}
		err = rows.Scan(&c.Code, &c.Label, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan access code")
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (s *ArchiveStore) RevokeCode(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE access_code SET is_active = 0 WHERE code = ?`, code)
	if err != nil {
		return errors.Wrap(err, "revoke access code")
	}
	return requireRow(res)
}

// Redeem checks an access code: malformed codes are a validation error,
// unknown or revoked ones read as not found.
func (s *ArchiveStore) Redeem(ctx context.Context, code string) error {
	if _, err := uuid.Parse(strings.TrimSpace(code)); err != nil {
		return invalidf("malformed access code")
	}

	var active bool
	err := s.db.QueryRowContext(ctx,
		`SELECT is_active FROM access_code WHERE code = ?`, strings.TrimSpace(code),
	).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get access code")
	}
	if !active {
		return ErrNotFound
	}
	return nil
}
