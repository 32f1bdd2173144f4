package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	"github.com/smallbiznis/hoteldesk/internal/audit/masking"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	obsmetrics "github.com/smallbiznis/hoteldesk/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     auditdomain.Repository
	Clock    clock.Clock
	Settings *config.SettingsHolder `optional:"true"`
	Metrics  *obsmetrics.Metrics    `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     auditdomain.Repository
	clock    clock.Clock
	settings *config.SettingsHolder
	metrics  *obsmetrics.Metrics
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("audit.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    p.Clock,
		settings: p.Settings,
		metrics:  p.Metrics,
	}
}

var systemActor = auditcontext.Actor{ID: "system", Role: "system"}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	if !validEntity(entry.EntityType) || entry.EntityID == 0 || strings.TrimSpace(string(entry.Action)) == "" {
		s.log.Warn("skipping malformed audit entry",
			zap.String("entity_type", string(entry.EntityType)),
			zap.String("action", string(entry.Action)),
		)
		return
	}

	actor, ok := auditcontext.ActorFromContext(ctx)
	if !ok {
		actor = systemActor
	}
	changes := entry.Changes
	if changes == nil {
		changes = []auditdomain.Change{}
	}

	record := auditdomain.Record{
		ID:         s.genID.Generate(),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Changes:    datatypes.JSONSlice[auditdomain.Change](changes),
		Actor:      datatypes.NewJSONType(actor),
		Note:       strings.TrimSpace(entry.Note),
		RequestID:  auditcontext.RequestIDFromContext(ctx),
		CreatedAt:  s.clock.Now(),
	}

	// The caller's transaction may already be closed; always write on the pool.
	if err := s.repo.Insert(context.WithoutCancel(ctx), s.db, &record); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("entity_type", string(entry.EntityType)),
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", string(entry.Action)),
			zap.Any("changes", masking.Changes(changes)),
			zap.Error(err),
		)
		s.metrics.RecordAuditFailure(ctx, string(entry.EntityType))
	}
}

func (s *Service) List(ctx context.Context, entityType auditdomain.EntityType, entityID snowflake.ID, limit int) ([]auditdomain.Record, error) {
	if !validEntity(entityType) || entityID == 0 {
		return nil, auditdomain.ErrInvalidEntity
	}
	if limit < 0 {
		return nil, auditdomain.ErrInvalidLimit
	}

	maxLimit := s.settings.Get().Audit.ListLimit
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	records, err := s.repo.List(ctx, s.db, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []auditdomain.Record{}
	}
	return records, nil
}

func validEntity(entityType auditdomain.EntityType) bool {
	switch entityType {
	case auditdomain.EntityBooking, auditdomain.EntityStock:
		return true
	default:
		return false
	}
}
