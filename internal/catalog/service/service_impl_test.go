package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/catalog/repository"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) domain.Catalog {
	t.Helper()
	db := dbtest.Open(t, &domain.Service{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: clock.NewFakeClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
	})
}

func hallVariants() []domain.Variant {
	return []domain.Variant{{
		Name:   "Full day",
		Prices: []domain.Price{{Type: pricing.PriceTypeFixed, Price: decimal.NewFromInt(1000)}},
	}}
}

func TestCreateDerivesSlugAndValidates(t *testing.T) {
	cat := newTestCatalog(t)
	ctx := context.Background()

	svc, err := cat.Create(ctx, domain.CreateRequest{Name: " Grand Ballroom ", Variants: hallVariants()})
	require.NoError(t, err)
	assert.Equal(t, "Grand Ballroom", svc.Name)
	assert.Equal(t, "grand-ballroom", svc.Slug)
	assert.False(t, svc.AllowOverlap)

	_, err = cat.Create(ctx, domain.CreateRequest{Name: "", Variants: hallVariants()})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = cat.Create(ctx, domain.CreateRequest{Name: "Pool"})
	assert.ErrorIs(t, err, domain.ErrInvalidVariants)

	_, err = cat.Create(ctx, domain.CreateRequest{Name: "Pool", Variants: []domain.Variant{{
		Name:   "Hourly",
		Prices: []domain.Price{{Type: "hourly", Price: decimal.NewFromInt(1)}},
	}}})
	assert.ErrorIs(t, err, domain.ErrInvalidPriceType)

	_, err = cat.Create(ctx, domain.CreateRequest{Name: "Pool", Variants: []domain.Variant{{
		Name:   "Hourly",
		Prices: []domain.Price{{Type: pricing.PriceTypePerHour, Price: decimal.NewFromInt(-5)}},
	}}})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	cat := newTestCatalog(t)
	ctx := context.Background()

	hall, err := cat.Create(ctx, domain.CreateRequest{Name: "Hall", Variants: hallVariants()})
	require.NoError(t, err)
	_, err = cat.Create(ctx, domain.CreateRequest{Name: "Garden", AllowOverlap: true, Variants: hallVariants()})
	require.NoError(t, err)

	require.NoError(t, cat.Delete(ctx, hall.ID.String()))

	list, err := cat.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, "Garden", list.Items[0].Name)

	all, err := cat.List(ctx, domain.ListRequest{IncludeDeleted: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	deleted, err := cat.Get(ctx, hall.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	restored, err := cat.Update(ctx, hall.ID.String(), domain.UpdateRequest{Restore: true})
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	list, err = cat.List(ctx, domain.ListRequest{Page: pagination.Page{Page: 1, Limit: 1}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	assert.Equal(t, 2, list.Pages)
}

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	cat := newTestCatalog(t)
	ctx := context.Background()

	hall, err := cat.Create(ctx, domain.CreateRequest{Name: "Hall", Description: "Main hall", Variants: hallVariants()})
	require.NoError(t, err)

	name := "Crystal Hall"
	overlap := true
	updated, err := cat.Update(ctx, hall.ID.String(), domain.UpdateRequest{Name: &name, AllowOverlap: &overlap})
	require.NoError(t, err)
	assert.Equal(t, "crystal-hall", updated.Slug)
	assert.Equal(t, "Main hall", updated.Description)
	assert.True(t, updated.AllowOverlap)
	require.Len(t, updated.Variants, 1)

	empty := []domain.Variant{}
	_, err = cat.Update(ctx, hall.ID.String(), domain.UpdateRequest{Variants: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidVariants)
}

func TestGetUnknown(t *testing.T) {
	cat := newTestCatalog(t)
	_, err := cat.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = cat.Get(context.Background(), "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
