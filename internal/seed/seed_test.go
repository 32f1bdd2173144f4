package seed

import (
	"context"
	"errors"
	"testing"

	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuth struct {
	authdomain.Service
	got []authdomain.CreateUserRequest
}

func (s *stubAuth) EnsureAdmin(ctx context.Context, req authdomain.CreateUserRequest) error {
	s.got = append(s.got, req)
	return nil
}

type stubCompany struct {
	companydomain.Service
	names []string
	err   error
}

func (s *stubCompany) EnsureDefault(ctx context.Context, name string) error {
	s.names = append(s.names, name)
	return s.err
}

func TestRunSeedsCompanyAndAdmin(t *testing.T) {
	auth := &stubAuth{}
	company := &stubCompany{}
	seeder := NewSeeder(Params{
		Cfg: config.Config{Bootstrap: config.BootstrapConfig{
			AdminEmail:    "owner@hotel.test",
			AdminPassword: "change-me-now",
			AdminName:     "Owner",
			CompanyName:   "Grand Hotel",
		}},
		Log:     zap.NewNop(),
		Auth:    auth,
		Company: company,
	})

	require.NoError(t, seeder.Run(context.Background()))
	assert.Equal(t, []string{"Grand Hotel"}, company.names)
	require.Len(t, auth.got, 1)
	assert.Equal(t, "owner@hotel.test", auth.got[0].Email)
	assert.Equal(t, authdomain.RoleAdmin, auth.got[0].Role)
}

func TestRunStopsOnCompanyFailure(t *testing.T) {
	auth := &stubAuth{}
	seeder := NewSeeder(Params{
		Log:     zap.NewNop(),
		Auth:    auth,
		Company: &stubCompany{err: errors.New("boom")},
	})

	err := seeder.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, auth.got)
}
