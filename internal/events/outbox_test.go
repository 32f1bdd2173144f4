package events

import (
	"context"
	"errors"
	"testing"
	"time"

	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestOutboxStampsEvent(t *testing.T) {
	pub := &mockPublisher{}
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	outbox := NewOutbox(pub, clock.NewFakeClock(now), zap.NewNop())

	var got Event
	pub.On("Publish", mock.Anything, mock.AnythingOfType("events.Event")).
		Run(func(args mock.Arguments) { got = args.Get(1).(Event) }).
		Return(nil).Once()

	ctx := auditcontext.WithActor(context.Background(), auditcontext.Actor{ID: "7", Role: "admin"})
	ctx = auditcontext.WithRequestID(ctx, "req-9")
	outbox.Publish(ctx, EventBookingCreated, map[string]any{"bookingId": "1"})

	pub.AssertExpectations(t)
	assert.Equal(t, EventBookingCreated, got.Type)
	assert.Equal(t, now, got.OccurredAt)
	assert.Equal(t, "7", got.ActorID)
	assert.Equal(t, "req-9", got.RequestID)
	assert.Len(t, got.ID, 26)
}

func TestOutboxSwallowsPublishErrors(t *testing.T) {
	pub := &mockPublisher{}
	core, logs := observer.New(zapcore.WarnLevel)
	outbox := NewOutbox(pub, clock.System(), zap.New(core))
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	outbox.Publish(context.Background(), EventStockLow, nil)

	require.Equal(t, 1, logs.FilterMessage("failed to publish event").Len())
}

func TestNilOutboxIsSafe(t *testing.T) {
	var outbox *Outbox
	assert.NotPanics(t, func() {
		outbox.Publish(context.Background(), EventBookingDeleted, nil)
	})
}
