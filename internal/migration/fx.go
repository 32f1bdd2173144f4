package migration

import (
	"context"

	"github.com/smallbiznis/hoteldesk/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB, seeder *seed.Seeder, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := Migrate(conn); err != nil {
					return err
				}
				log.Info("database migrated")
				return seeder.Run(ctx)
			},
		})
	}),
)
