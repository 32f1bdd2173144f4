package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/internal/audit/diff"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"github.com/smallbiznis/hoteldesk/internal/booking/domain"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/events"
	obsmetrics "github.com/smallbiznis/hoteldesk/internal/observability/metrics"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ServiceRepo catalogdomain.Repository
	AuditSvc    auditdomain.Service
	Clock       clock.Clock
	Settings    *config.SettingsHolder `optional:"true"`
	Outbox      *events.Outbox         `optional:"true"`
	Metrics     *obsmetrics.Metrics    `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	serviceRepo catalogdomain.Repository
	auditSvc    auditdomain.Service
	clock       clock.Clock
	settings    *config.SettingsHolder
	outbox      *events.Outbox
	metrics     *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("booking.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		serviceRepo: p.ServiceRepo,
		auditSvc:    p.AuditSvc,
		clock:       p.Clock,
		settings:    p.Settings,
		outbox:      p.Outbox,
		metrics:     p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Booking, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, domain.ErrInvalidCustomer
	}
	if !req.StartAt.Before(req.EndAt) {
		return nil, domain.ErrInvalidTimeRange
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrInvalidItems
	}
	if req.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	var createdBy string
	if actor, ok := auditcontext.ActorFromContext(ctx); ok {
		createdBy = actor.ID
	}

	var booking *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.buildItems(ctx, tx, req.Items)
		if err != nil {
			return err
		}
		subtotal, total := totals(items, req.DiscountAmount)

		now := s.clock.Now()
		booking = &domain.Booking{
			ID:             s.genID.Generate(),
			CustomerName:   customerName,
			CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
			CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
			EventName:      strings.TrimSpace(req.EventName),
			Notes:          strings.TrimSpace(req.Notes),
			StartAt:        req.StartAt.UTC(),
			EndAt:          req.EndAt.UTC(),
			Status:         status,
			Items:          datatypes.JSONSlice[domain.Item](items),
			Subtotal:       subtotal,
			DiscountAmount: req.DiscountAmount,
			Total:          total,
			CreatedBy:      createdBy,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.ensureAvailable(ctx, tx, booking); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, booking)
	})
	if err != nil {
		s.recordConflict(ctx, err)
		return nil, err
	}

	changes := diff.Initial(trackedValues(booking)...)
	s.audit(ctx, booking.ID, auditdomain.ActionCreated, changes)
	s.metrics.RecordBookingMutation(ctx, string(auditdomain.ActionCreated))
	s.outbox.Publish(ctx, events.EventBookingCreated, eventPayload(booking))
	return booking, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	bookingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	booking, err := s.repo.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Booking], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return pagination.Result[domain.Booking]{}, domain.ErrInvalidTimeRange
	}
	if req.Status != "" && !req.Status.Valid() {
		return pagination.Result[domain.Booking]{}, domain.ErrInvalidStatus
	}

	opts := []repository.QueryOption{repository.Search(req.Q, "customer_name", "event_name")}
	if !req.IncludeDeleted || !isAdmin(ctx) {
		opts = append(opts, repository.NotDeleted())
	}
	if req.Status != "" {
		opts = append(opts, repository.Where("status = ?", req.Status))
	}
	if req.From != nil {
		opts = append(opts, repository.Where("end_at > ?", req.From.UTC()))
	}
	if req.To != nil {
		opts = append(opts, repository.Where("start_at < ?", req.To.UTC()))
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Booking]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.Deleted() {
		return domain.ErrNotFound
	}

	now := s.clock.Now()
	booking.DeletedAt = &now
	booking.UpdatedAt = now
	if err := s.repo.Save(ctx, s.db, booking); err != nil {
		return err
	}

	s.audit(ctx, booking.ID, auditdomain.ActionDeleted, []auditdomain.Change{
		{Key: "deletedAt", OldValue: nil, NewValue: now},
	})
	s.metrics.RecordBookingMutation(ctx, string(auditdomain.ActionDeleted))
	s.outbox.Publish(ctx, events.EventBookingDeleted, eventPayload(booking))
	return nil
}

func (s *Service) Audit(ctx context.Context, id string, limit int) ([]auditdomain.Record, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Deleted() && !isAdmin(ctx) {
		return nil, domain.ErrNotFound
	}
	return s.auditSvc.List(ctx, auditdomain.EntityBooking, booking.ID, limit)
}

func (s *Service) audit(ctx context.Context, bookingID snowflake.ID, action auditdomain.Action, changes []auditdomain.Change) {
	s.auditSvc.Record(ctx, auditdomain.Entry{
		EntityType: auditdomain.EntityBooking,
		EntityID:   bookingID,
		Action:     action,
		Changes:    changes,
		Note:       diff.Note(changes),
	})
}

func (s *Service) recordConflict(ctx context.Context, err error) {
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		return
	}
	s.metrics.RecordBookingConflict(ctx)
	ids := make([]string, 0, len(conflict.ServiceIDs))
	for _, id := range conflict.ServiceIDs {
		ids = append(ids, id.String())
	}
	s.log.Info("booking rejected, services not available", zap.Strings("service_ids", ids))
}

func totals(items []domain.Item, discount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	lineTotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		lineTotals = append(lineTotals, item.Total)
	}
	return pricing.Totals(lineTotals, discount)
}

// trackedValues lists the audited fields of a booking in a stable order.
func trackedValues(b *domain.Booking) []diff.Value {
	return []diff.Value{
		{Key: "status", Value: b.Status},
		{Key: "eventName", Value: b.EventName},
		{Key: "customerName", Value: b.CustomerName},
		{Key: "customerPhone", Value: b.CustomerPhone},
		{Key: "customerEmail", Value: b.CustomerEmail},
		{Key: "notes", Value: b.Notes},
		{Key: "items", Value: []domain.Item(b.Items)},
		{Key: "startAt", Value: b.StartAt},
		{Key: "endAt", Value: b.EndAt},
		{Key: "discountAmount", Value: b.DiscountAmount},
		{Key: "subtotal", Value: b.Subtotal},
		{Key: "total", Value: b.Total},
	}
}

func eventPayload(b *domain.Booking) map[string]any {
	return map[string]any{
		"bookingId": b.ID.String(),
		"status":    string(b.Status),
		"startAt":   b.StartAt,
		"endAt":     b.EndAt,
		"total":     b.Total.String(),
	}
}

func isAdmin(ctx context.Context) bool {
	actor, ok := auditcontext.ActorFromContext(ctx)
	return ok && actor.Role == "admin"
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
