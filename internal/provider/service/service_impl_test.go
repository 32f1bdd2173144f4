package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/provider/domain"
	"github.com/smallbiznis/hoteldesk/internal/provider/repository"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProviderService(t *testing.T) domain.Service {
	t.Helper()
	db := dbtest.Open(t, &domain.Provider{})
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: clock.NewFakeClock(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestProviderLifecycle(t *testing.T) {
	svc := newProviderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Request{Name: "Sari Catering", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	catering, err := svc.Create(ctx, domain.Request{Name: "Sari Catering", Category: "Catering", Email: "sari@catering.test"})
	require.NoError(t, err)
	assert.Equal(t, "catering", catering.Category)
	_, err = svc.Create(ctx, domain.Request{Name: "Bloom Decor", Category: "decoration"})
	require.NoError(t, err)

	res, err := svc.List(ctx, domain.ListRequest{Category: "CATERING"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, catering.ID, res.Items[0].ID)

	phone := "+62 811 000"
	updated, err := svc.Update(ctx, catering.ID.String(), domain.Patch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "+62 811 000", updated.Phone)

	empty := " "
	_, err = svc.Update(ctx, catering.ID.String(), domain.Patch{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	require.NoError(t, svc.Delete(ctx, catering.ID.String()))
	_, err = svc.Get(ctx, catering.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err = svc.List(ctx, domain.ListRequest{Q: "sari"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = svc.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
