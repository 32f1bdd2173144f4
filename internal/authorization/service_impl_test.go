package authorization

import (
	"context"
	"testing"

	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	db := dbtest.Open(t)
	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestAuthorizeRoles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		role   string
		object string
		action string
		want   error
	}{
		{"admin", ObjectBooking, ActionDelete, nil},
		{"admin", ObjectUser, ActionWrite, nil},
		{"manager", ObjectBooking, ActionWrite, nil},
		{"manager", ObjectPayment, ActionRead, nil},
		{"manager", ObjectBooking, ActionDelete, ErrForbidden},
		{"manager", ObjectCompany, ActionWrite, ErrForbidden},
		{"manager", ObjectUser, ActionRead, ErrForbidden},
		{"guest", ObjectBooking, ActionRead, ErrForbidden},
		{"", ObjectBooking, ActionRead, ErrInvalidActor},
		{"admin", "", ActionRead, ErrInvalidObject},
	}
	for _, tc := range cases {
		err := svc.Authorize(ctx, tc.role, tc.object, tc.action)
		if tc.want == nil {
			assert.NoError(t, err, "%s %s %s", tc.role, tc.object, tc.action)
			continue
		}
		assert.ErrorIs(t, err, tc.want, "%s %s %s", tc.role, tc.object, tc.action)
	}
}

func TestNewEnforcerIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	_, err := NewEnforcer(db)
	require.NoError(t, err)
	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	policies, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, 15)
}
