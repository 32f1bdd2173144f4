package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	DeletedAt *time.Time
}

func TestStoreListFiltersAndPages(t *testing.T) {
	db := dbtest.Open(t, &widget{})
	ctx := context.Background()
	store := ProvideStore[widget]()

	now := time.Now().UTC()
	deleted := now
	rows := []widget{
		{ID: 1, Name: "Towel rack", CreatedAt: now.Add(-3 * time.Minute)},
		{ID: 2, Name: "Bath towel", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: 3, Name: "Towel hook", CreatedAt: now.Add(-1 * time.Minute), DeletedAt: &deleted},
		{ID: 4, Name: "Soap", CreatedAt: now},
	}
	for i := range rows {
		require.NoError(t, store.Create(ctx, db, &rows[i]))
	}

	items, total, err := store.List(ctx, db, pagination.Page{Page: 1, Limit: 1}, NotDeleted(), Search("TOWEL", "name"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 1)
	assert.Equal(t, snowflake.ID(2), items[0].ID)

	missing, err := store.FindByID(ctx, db, 3, NotDeleted())
	require.NoError(t, err)
	assert.Nil(t, missing)

	found, err := store.FindByID(ctx, db, 3)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Towel hook", found.Name)
}
