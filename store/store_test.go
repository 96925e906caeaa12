package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/database"
)

// newTestDB opens an in-memory database and runs the real migrations.
// A single connection keeps the memory database alive and shared.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_fk=1")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestCourse(t *testing.T, courses *CourseStore, seats int) *Course {
	t.Helper()

	c := &Course{
		Title:      "دورة تجويد",
		Instructor: "الشيخ محمد",
		TotalSeats: seats,
		IsActive:   true,
	}
	require.NoError(t, courses.Create(context.Background(), c))
	return c
}
