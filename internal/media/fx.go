package media

import (
	"github.com/smallbiznis/hoteldesk/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("media",
	fx.Provide(func(cfg config.Config) *LocalStorage {
		return NewLocalStorage(cfg.UploadDir, "/uploads")
	}),
	fx.Provide(func(s *LocalStorage) Storage { return s }),
	fx.Provide(NewService),
	fx.Provide(func(s *Service) ImageStore { return s }),
)
