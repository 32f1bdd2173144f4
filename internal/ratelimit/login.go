package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/hoteldesk/internal/config"
	obsmetrics "github.com/smallbiznis/hoteldesk/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyLoginIP = "hoteldesk:login:ip:%s"

// LoginLimiter throttles login attempts per client IP. A nil limiter allows
// everything.
type LoginLimiter struct {
	bucket  *TokenBucket
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

type LoginLimiterParams struct {
	fx.In

	Config  config.Config
	Client  *redis.Client `optional:"true"`
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

func NewLoginLimiter(p LoginLimiterParams) *LoginLimiter {
	if p.Client == nil || p.Config.LoginRatePerMinute <= 0 || p.Config.LoginBurst <= 0 {
		return nil
	}
	return &LoginLimiter{
		bucket:  NewTokenBucket(p.Client),
		rate:    float64(p.Config.LoginRatePerMinute) / 60,
		burst:   p.Config.LoginBurst,
		log:     p.Log.Named("ratelimit.login"),
		metrics: p.Metrics,
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow reports whether another login attempt from ip may proceed. Redis
// failures fail open.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = "unknown"
	}
	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyLoginIP, ip), l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return &Result{Allowed: true}, err
	}
	if !res.Allowed {
		l.metrics.RecordLoginRateLimited(ctx, "ip")
	}
	return res, nil
}
