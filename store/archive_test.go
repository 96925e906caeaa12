package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessCodeLifecycle(t *testing.T) {
	db := newTestDB(t)
	archive := NewArchiveStore(db)
	ctx := context.Background()

	code, err := archive.CreateCode(ctx, "دفعة ٢٠٢٦")
	require.NoError(t, err)
	assert.NotEmpty(t, code.Code)

	require.NoError(t, archive.Redeem(ctx, code.Code))

	require.NoError(t, archive.RevokeCode(ctx, code.Code))
	assert.ErrorIs(t, archive.Redeem(ctx, code.Code), ErrNotFound)
}

func TestRedeemRejectsBadCodes(t *testing.T) {
	db := newTestDB(t)
	archive := NewArchiveStore(db)
	ctx := context.Background()

	assert.ErrorIs(t, archive.Redeem(ctx, "not-a-uuid"), ErrValidation)
	assert.ErrorIs(t, archive.Redeem(ctx, ""), ErrValidation)

	// well-formed but unknown
	assert.ErrorIs(t, archive.Redeem(ctx, "00000000-0000-0000-0000-000000000000"), ErrNotFound)
}

func TestArchiveItems(t *testing.T) {
	db := newTestDB(t)
	archive := NewArchiveStore(db)
	ctx := context.Background()

	item := &ArchiveItem{Title: "حفل الختام", FileURL: "https://cdn.example.com/x.mp4"}
	require.NoError(t, archive.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	assert.ErrorIs(t, archive.CreateItem(ctx, &ArchiveItem{Title: " "}), ErrValidation)

	items, err := archive.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, archive.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, archive.DeleteItem(ctx, item.ID), ErrNotFound)
}
