package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	"github.com/smallbiznis/hoteldesk/internal/audit/repository"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, db *gorm.DB, log *zap.Logger) (*Service, *clock.FakeClock) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(Params{
		DB:       db,
		Log:      log,
		GenID:    node,
		Repo:     repository.Provide(),
		Clock:    clk,
		Settings: config.NewStaticSettings(config.DefaultSettings()),
	})
	return svc.(*Service), clk
}

func TestRecordStoresActorSnapshotAndRequestID(t *testing.T) {
	db := dbtest.Open(t, &auditdomain.Record{})
	svc, _ := newTestService(t, db, zap.NewNop())

	ctx := auditcontext.WithActor(context.Background(), auditcontext.Actor{ID: "42", Email: "admin@hotel.test", Role: "admin"})
	ctx = auditcontext.WithRequestID(ctx, "req-1")

	svc.Record(ctx, auditdomain.Entry{
		EntityType: auditdomain.EntityBooking,
		EntityID:   7,
		Action:     auditdomain.ActionUpdated,
		Changes:    []auditdomain.Change{{Key: "status", OldValue: "pending", NewValue: "confirmed"}},
		Note:       "status: pending -> confirmed",
	})

	records, err := svc.List(context.Background(), auditdomain.EntityBooking, 7, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, auditdomain.ActionUpdated, rec.Action)
	assert.Equal(t, "admin@hotel.test", rec.Actor.Data().Email)
	assert.Equal(t, "req-1", rec.RequestID)
	require.Len(t, rec.Changes, 1)
	assert.Equal(t, "status", rec.Changes[0].Key)
	assert.Equal(t, "confirmed", rec.Changes[0].NewValue)
}

func TestRecordWithoutActorUsesSystem(t *testing.T) {
	db := dbtest.Open(t, &auditdomain.Record{})
	svc, _ := newTestService(t, db, zap.NewNop())

	svc.Record(context.Background(), auditdomain.Entry{EntityType: auditdomain.EntityStock, EntityID: 3, Action: auditdomain.ActionCreated})

	records, err := svc.List(context.Background(), auditdomain.EntityStock, 3, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "system", records[0].Actor.Data().ID)
	assert.Empty(t, records[0].Changes)
}

func TestListNewestFirstWithLimit(t *testing.T) {
	db := dbtest.Open(t, &auditdomain.Record{})
	svc, clk := newTestService(t, db, zap.NewNop())

	for _, action := range []auditdomain.Action{auditdomain.ActionCreated, auditdomain.ActionUpdated, auditdomain.ActionDeleted} {
		svc.Record(context.Background(), auditdomain.Entry{EntityType: auditdomain.EntityBooking, EntityID: 9, Action: action})
		clk.Advance(time.Minute)
	}
	svc.Record(context.Background(), auditdomain.Entry{EntityType: auditdomain.EntityBooking, EntityID: 10, Action: auditdomain.ActionCreated})

	records, err := svc.List(context.Background(), auditdomain.EntityBooking, 9, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, auditdomain.ActionDeleted, records[0].Action)
	assert.Equal(t, auditdomain.ActionUpdated, records[1].Action)
}

func TestRecordFailureIsSwallowedAndLogged(t *testing.T) {
	// No audit table: every insert fails.
	db := dbtest.Open(t)
	core, logs := observer.New(zapcore.WarnLevel)
	svc, _ := newTestService(t, db, zap.New(core))

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), auditdomain.Entry{
			EntityType: auditdomain.EntityBooking,
			EntityID:   1,
			Action:     auditdomain.ActionCreated,
			Changes:    []auditdomain.Change{{Key: "customerPhone", NewValue: "081234567890"}},
		})
	})

	entries := logs.FilterMessage("failed to write audit log").All()
	require.Len(t, entries, 1)
	changes, ok := entries[0].ContextMap()["changes"].([]auditdomain.Change)
	if ok {
		assert.Equal(t, "****7890", changes[0].NewValue)
	}
}

func TestListRejectsUnknownEntity(t *testing.T) {
	db := dbtest.Open(t, &auditdomain.Record{})
	svc, _ := newTestService(t, db, zap.NewNop())

	_, err := svc.List(context.Background(), "invoice", 1, 0)
	assert.ErrorIs(t, err, auditdomain.ErrInvalidEntity)

	_, err = svc.List(context.Background(), auditdomain.EntityBooking, 1, -1)
	assert.ErrorIs(t, err, auditdomain.ErrInvalidLimit)
}
