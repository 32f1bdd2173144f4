package provider

import (
	"github.com/smallbiznis/hoteldesk/internal/provider/repository"
	"github.com/smallbiznis/hoteldesk/internal/provider/service"
	"go.uber.org/fx"
)

var Module = fx.Module("provider.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
