package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Course struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Instructor     string    `json:"instructor"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Price          float64   `json:"price"`
	IsActive       bool      `json:"is_active"`
	BannerURL      string    `json:"banner_url"`
	Status         string    `json:"status"`
	IsHappeningNow bool      `json:"is_happening_now"`
	CreatedAt      time.Time `json:"created_at"`
}

type CourseStore struct {
	db *sql.DB
}

func NewCourseStore(db *sql.DB) *CourseStore {
	return &CourseStore{db}
}

const courseColumns = `id, title, description, instructor, start_date, end_date,
	total_seats, available_seats, price, is_active, banner_url, status,
	is_happening_now, created_at`

// Create inserts the course with all seats available.
func (s *CourseStore) Create(ctx context.Context, c *Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return invalidf("course title is required")
	}
	if c.TotalSeats < 0 {
		return invalidf("total seats must not be negative")
	}
	if c.Status == "" {
		c.Status = "upcoming"
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO course (
			title, description, instructor, start_date, end_date,
			total_seats, available_seats, price, is_active, banner_url,
			status, is_happening_now
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		c.Title, c.Description, c.Instructor, c.StartDate, c.EndDate,
		c.TotalSeats, c.TotalSeats, c.Price, c.IsActive, c.BannerURL,
		c.Status, c.IsHappeningNow,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert course")
	}
	c.AvailableSeats = c.TotalSeats
	return nil
}

func (s *CourseStore) Get(ctx context.Context, id int64) (*Course, error) {
	c := Course{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM course WHERE id = ?`, id,
	).Scan(
		&c.ID, &c.Title, &c.Description, &c.Instructor, &c.StartDate, &c.EndDate,
		&c.TotalSeats, &c.AvailableSeats, &c.Price, &c.IsActive, &c.BannerURL,
		&c.Status, &c.IsHappeningNow, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get course")
	}
	return &c, nil
}

func (s *CourseStore) List(ctx context.Context, activeOnly bool) ([]Course, error) {
	query := `SELECT ` + courseColumns + ` FROM course`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	defer rows.Close()

	courses := []Course{}
	for rows.Next() {
		c := Course{}
		err = rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Instructor, &c.StartDate, &c.EndDate,
			&c.TotalSeats, &c.AvailableSeats, &c.Price, &c.IsActive, &c.BannerURL,
			&c.Status, &c.IsHappeningNow, &c.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan course")
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Update rewrites course metadata. Seat counters are never touched here:
// they only move through the capacity primitives below.
func (s *CourseStore) Update(ctx context.Context, c *Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return invalidf("course title is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE course SET
			title = ?, description = ?, instructor = ?,
			start_date = ?, end_date = ?, price = ?, is_active = ?,
			banner_url = ?, status = ?, is_happening_now = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Instructor,
		c.StartDate, c.EndDate, c.Price, c.IsActive,
		c.BannerURL, c.Status, c.IsHappeningNow,
		c.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update course")
	}
	return requireRow(res)
}

// Delete removes the course; its registration form, fields and applicants go
// with it through foreign key cascade.
func (s *CourseStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM course WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete course")
	}
	return requireRow(res)
}

// execer is satisfied by *sql.DB and *sql.Tx, so the capacity primitives run
// inside whatever transaction the caller holds.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// reserveSeat takes one seat with a single conditional update, so two
// concurrent submissions can never both take the last seat.
func reserveSeat(ctx context.Context, q execer, courseID int64) error {
	res, err := q.ExecContext(ctx, `
		UPDATE course SET available_seats = available_seats - 1
		WHERE id = ? AND available_seats > 0`,
		courseID,
	)
	if err != nil {
		return errors.Wrap(err, "reserve seat")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reserve seat")
	}
	if n == 0 {
		return ErrNoCapacity
	}
	return nil
}

// releaseSeat gives one seat back, capped at total_seats.
func releaseSeat(ctx context.Context, q execer, courseID int64) error {
	_, err := q.ExecContext(ctx, `
		UPDATE course SET available_seats = available_seats + 1
		WHERE id = ? AND available_seats < total_seats`,
		courseID,
	)
	return errors.Wrap(err, "release seat")
}

// ReserveSeat exposes the conditional decrement as a standalone operation.
func (s *CourseStore) ReserveSeat(ctx context.Context, courseID int64) error {
	return reserveSeat(ctx, s.db, courseID)
}

// ReleaseSeat exposes the capped increment as a standalone operation.
func (s *CourseStore) ReleaseSeat(ctx context.Context, courseID int64) error {
	return releaseSeat(ctx, s.db, courseID)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
