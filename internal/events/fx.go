package events

import (
	"context"
	"strings"

	"github.com/smallbiznis/hoteldesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("events",
	fx.Provide(NewPublisher),
	fx.Provide(NewOutbox),
)

// NewPublisher returns the AMQP publisher when AMQP_URL is set and a no-op
// publisher otherwise. A broker that is down at start is retried on publish.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) Publisher {
	url := strings.TrimSpace(cfg.AMQPURL)
	if url == "" {
		log.Info("event publishing disabled")
		return NewNoopPublisher()
	}

	pub := NewAMQPPublisher(url, cfg.AMQPExchange)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pub.Connect(); err != nil {
				log.Warn("rabbitmq unavailable, events will be retried on publish", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
