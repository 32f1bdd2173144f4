package documents

import (
	"github.com/smallbiznis/hoteldesk/internal/media"
	"go.uber.org/fx"
)

var Module = fx.Module("documents",
	fx.Provide(func(storage *media.LocalStorage) LogoResolver { return storage }),
	fx.Provide(NewService),
)
