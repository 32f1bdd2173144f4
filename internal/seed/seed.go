// Package seed bootstraps an empty database with the first admin account and
// the company profile.
package seed

import (
	"context"
	"fmt"

	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("seed",
	fx.Provide(NewSeeder),
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Auth    authdomain.Service
	Company companydomain.Service
}

type Seeder struct {
	bootstrap config.BootstrapConfig
	log       *zap.Logger
	auth      authdomain.Service
	company   companydomain.Service
}

func NewSeeder(p Params) *Seeder {
	return &Seeder{
		bootstrap: p.Cfg.Bootstrap,
		log:       p.Log.Named("seed"),
		auth:      p.Auth,
		company:   p.Company,
	}
}

// Run is idempotent: existing admins and profiles are left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.company.EnsureDefault(ctx, s.bootstrap.CompanyName); err != nil {
		return fmt.Errorf("seed company profile: %w", err)
	}
	if err := s.auth.EnsureAdmin(ctx, authdomain.CreateUserRequest{
		Email:    s.bootstrap.AdminEmail,
		Name:     s.bootstrap.AdminName,
		Password: s.bootstrap.AdminPassword,
		Role:     authdomain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.log.Debug("seed complete")
	return nil
}
