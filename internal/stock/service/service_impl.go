package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/audit/diff"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/events"
	"github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	AuditSvc auditdomain.Service
	Clock    clock.Clock
	Settings *config.SettingsHolder `optional:"true"`
	Outbox   *events.Outbox         `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	auditSvc auditdomain.Service
	clock    clock.Clock
	settings *config.SettingsHolder
	outbox   *events.Outbox
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("stock.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		auditSvc: p.AuditSvc,
		clock:    p.Clock,
		settings: p.Settings,
		outbox:   p.Outbox,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Stock, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if req.Threshold.IsNegative() {
		return nil, domain.ErrInvalidThreshold
	}

	now := s.clock.Now()
	item := &domain.Stock{
		ID:        s.genID.Generate(),
		Name:      name,
		SKU:       strings.TrimSpace(req.SKU),
		Unit:      strings.TrimSpace(req.Unit),
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, item); err != nil {
		return nil, err
	}

	changes := diff.Initial(trackedValues(item)...)
	s.audit(ctx, item.ID, auditdomain.ActionCreated, changes, diff.Note(changes))
	s.notifyLow(ctx, nil, item)
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Stock, error) {
	stockID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, s.db, stockID, repository.NotDeleted())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Stock], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	opts := []repository.QueryOption{
		repository.NotDeleted(),
		repository.Search(req.Q, "name", "sku"),
	}
	if req.Low {
		opts = append(opts, repository.Where("quantity <= threshold"))
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Stock]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Stock, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *current
	next := *current

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return nil, domain.ErrInvalidName
		}
	}
	if patch.SKU != nil {
		next.SKU = strings.TrimSpace(*patch.SKU)
	}
	if patch.Unit != nil {
		next.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.Quantity != nil {
		if patch.Quantity.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		next.Quantity = *patch.Quantity
	}
	if patch.Threshold != nil {
		if patch.Threshold.IsNegative() {
			return nil, domain.ErrInvalidThreshold
		}
		next.Threshold = *patch.Threshold
	}
	if patch.Notes != nil {
		next.Notes = strings.TrimSpace(*patch.Notes)
	}

	var tracker diff.Tracker
	old := trackedValues(&before)
	for i, v := range trackedValues(&next) {
		tracker.Track(v.Key, old[i].Value, v.Value)
	}
	if tracker.Empty() {
		return current, nil
	}

	next.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, &next); err != nil {
		return nil, err
	}
	s.audit(ctx, next.ID, auditdomain.ActionUpdated, tracker.Changes(), diff.Note(tracker.Changes()))
	s.notifyLow(ctx, &before, &next)
	return &next, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	item.DeletedAt = &now
	item.UpdatedAt = now
	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return err
	}

	changes := []auditdomain.Change{{Key: "deletedAt", OldValue: nil, NewValue: now}}
	s.audit(ctx, item.ID, auditdomain.ActionDeleted, changes, diff.Note(changes))
	return nil
}

func (s *Service) Adjust(ctx context.Context, id string, req domain.AdjustRequest) (*domain.Stock, error) {
	if req.Delta.IsZero() {
		return nil, domain.ErrInvalidDelta
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidReason
	}
	stockID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var before, next domain.Stock
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, stockID, repository.NotDeleted())
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		before = *current
		next = *current
		next.Quantity = current.Quantity.Add(req.Delta)
		if next.Quantity.IsNegative() {
			return domain.ErrInvalidQuantity
		}
		next.UpdatedAt = s.clock.Now()
		return s.repo.Save(ctx, tx, &next)
	})
	if err != nil {
		return nil, err
	}

	changes := []auditdomain.Change{{Key: "quantity", OldValue: before.Quantity, NewValue: next.Quantity}}
	s.audit(ctx, next.ID, auditdomain.ActionAdjusted, changes, reason)
	s.outbox.Publish(ctx, events.EventStockAdjusted, map[string]any{
		"stockId":  next.ID.String(),
		"delta":    req.Delta.String(),
		"quantity": next.Quantity.String(),
		"reason":   reason,
	})
	s.notifyLow(ctx, &before, &next)
	return &next, nil
}

func (s *Service) Audit(ctx context.Context, id string, limit int) ([]auditdomain.Record, error) {
	stockID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	// deleted items keep their history readable
	item, err := s.repo.FindByID(ctx, s.db, stockID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return s.auditSvc.List(ctx, auditdomain.EntityStock, item.ID, limit)
}

func (s *Service) audit(ctx context.Context, stockID snowflake.ID, action auditdomain.Action, changes []auditdomain.Change, note string) {
	s.auditSvc.Record(ctx, auditdomain.Entry{
		EntityType: auditdomain.EntityStock,
		EntityID:   stockID,
		Action:     action,
		Changes:    changes,
		Note:       note,
	})
}

// notifyLow publishes stock.low when an item crosses into the low state.
func (s *Service) notifyLow(ctx context.Context, before, after *domain.Stock) {
	if !after.Low() || (before != nil && before.Low()) {
		return
	}
	s.log.Info("stock is low",
		zap.String("stock_id", after.ID.String()),
		zap.String("quantity", after.Quantity.String()),
		zap.String("threshold", after.Threshold.String()),
	)
	s.outbox.Publish(ctx, events.EventStockLow, map[string]any{
		"stockId":   after.ID.String(),
		"name":      after.Name,
		"quantity":  after.Quantity.String(),
		"threshold": after.Threshold.String(),
	})
}

func trackedValues(s *domain.Stock) []diff.Value {
	return []diff.Value{
		{Key: "name", Value: s.Name},
		{Key: "sku", Value: s.SKU},
		{Key: "unit", Value: s.Unit},
		{Key: "quantity", Value: s.Quantity},
		{Key: "threshold", Value: s.Threshold},
		{Key: "notes", Value: s.Notes},
	}
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
