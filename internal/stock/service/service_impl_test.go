package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	auditrepository "github.com/smallbiznis/hoteldesk/internal/audit/repository"
	auditservice "github.com/smallbiznis/hoteldesk/internal/audit/service"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"github.com/smallbiznis/hoteldesk/internal/stock/repository"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStockTest(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()
	db := dbtest.Open(t, &domain.Stock{}, &auditdomain.Record{})
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC))
	settings := config.NewStaticSettings(config.DefaultSettings())

	auditSvc := auditservice.NewService(auditservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     auditrepository.Provide(),
		Clock:    clk,
		Settings: settings,
	})
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		AuditSvc: auditSvc,
		Clock:    clk,
		Settings: settings,
	})
	return svc, clk
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestCreateStockAuditsInitialValues(t *testing.T) {
	svc, _ := setupStockTest(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateRequest{Name: " Bath towel ", SKU: "TW-01", Unit: "pcs", Quantity: qty(40), Threshold: qty(10)})
	require.NoError(t, err)
	assert.Equal(t, "Bath towel", item.Name)
	assert.False(t, item.Low())

	records, err := svc.Audit(ctx, item.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, auditdomain.ActionCreated, records[0].Action)
	assert.Len(t, records[0].Changes, 6)
	assert.Contains(t, records[0].Note, "name: null -> Bath towel")
}

func TestCreateStockValidation(t *testing.T) {
	svc, _ := setupStockTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Soap", Quantity: qty(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Soap", Threshold: qty(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestUpdateStockRecordsOnlyChangedKeys(t *testing.T) {
	svc, clk := setupStockTest(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateRequest{Name: "Soap", Unit: "pcs", Quantity: qty(20), Threshold: qty(5)})
	require.NoError(t, err)
	clk.Advance(time.Minute)

	unit := "pcs"
	threshold := qty(8)
	updated, err := svc.Update(ctx, item.ID.String(), domain.Patch{Unit: &unit, Threshold: &threshold})
	require.NoError(t, err)
	assert.True(t, updated.Threshold.Equal(qty(8)))

	records, err := svc.Audit(ctx, item.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	latest := records[0]
	assert.Equal(t, auditdomain.ActionUpdated, latest.Action)
	require.Len(t, latest.Changes, 1)
	assert.Equal(t, "threshold", latest.Changes[0].Key)
	assert.Equal(t, "threshold: 5 -> 8", latest.Note)

	// no-op patch writes nothing
	_, err = svc.Update(ctx, item.ID.String(), domain.Patch{Unit: &unit})
	require.NoError(t, err)
	records, err = svc.Audit(ctx, item.ID.String(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAdjustStock(t *testing.T) {
	svc, clk := setupStockTest(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, domain.CreateRequest{Name: "Napkin", Quantity: qty(12), Threshold: qty(10)})
	require.NoError(t, err)
	clk.Advance(time.Minute)

	_, err = svc.Adjust(ctx, item.ID.String(), domain.AdjustRequest{Delta: qty(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidReason)
	_, err = svc.Adjust(ctx, item.ID.String(), domain.AdjustRequest{Delta: decimal.Zero, Reason: "count"})
	assert.ErrorIs(t, err, domain.ErrInvalidDelta)
	_, err = svc.Adjust(ctx, item.ID.String(), domain.AdjustRequest{Delta: qty(-20), Reason: "wedding"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	adjusted, err := svc.Adjust(ctx, item.ID.String(), domain.AdjustRequest{Delta: qty(-3), Reason: "used at wedding"})
	require.NoError(t, err)
	assert.True(t, adjusted.Quantity.Equal(qty(9)))
	assert.True(t, adjusted.Low())

	records, err := svc.Audit(ctx, item.ID.String(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, auditdomain.ActionAdjusted, records[0].Action)
	assert.Equal(t, "used at wedding", records[0].Note)
}

func TestListStockLowFilterAndDelete(t *testing.T) {
	svc, _ := setupStockTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Towel", Quantity: qty(50), Threshold: qty(10)})
	require.NoError(t, err)
	low, err := svc.Create(ctx, domain.CreateRequest{Name: "Candle", Quantity: qty(4), Threshold: qty(4)})
	require.NoError(t, err)

	res, err := svc.List(ctx, domain.ListRequest{Low: true})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, low.ID, res.Items[0].ID)

	require.NoError(t, svc.Delete(ctx, low.ID.String()))
	res, err = svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = svc.Get(ctx, low.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, low.ID.String()), domain.ErrNotFound)

	records, err := svc.Audit(ctx, low.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, auditdomain.ActionDeleted, records[0].Action)
}
