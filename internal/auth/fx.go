package auth

import (
	"github.com/smallbiznis/hoteldesk/internal/auth/repository"
	"github.com/smallbiznis/hoteldesk/internal/auth/service"
	"github.com/smallbiznis/hoteldesk/internal/auth/session"
	"github.com/smallbiznis/hoteldesk/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(token.NewIssuer),
	fx.Provide(service.New),
	session.Module,
)
