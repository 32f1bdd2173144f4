package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
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
	Repo     domain.Repository
	Clock    clock.Clock
	Settings *config.SettingsHolder `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	clock    clock.Clock
	settings *config.SettingsHolder
}

func New(p Params) domain.Catalog {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("catalog.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    p.Clock,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	variants, err := normalizeVariants(req.Variants)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	svc := &domain.Service{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         slug.Make(name),
		Description:  strings.TrimSpace(req.Description),
		AllowOverlap: req.AllowOverlap,
		Variants:     datatypes.JSONSlice[domain.Variant](variants),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Service, error) {
	serviceID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	svc, err := s.repo.FindByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Service], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	opts := []repository.QueryOption{repository.Search(req.Q, "name", "description")}
	if !req.IncludeDeleted {
		opts = append(opts, repository.NotDeleted())
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Service]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		svc.Name = name
		svc.Slug = slug.Make(name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.AllowOverlap != nil {
		svc.AllowOverlap = *req.AllowOverlap
	}
	if req.Variants != nil {
		variants, err := normalizeVariants(*req.Variants)
		if err != nil {
			return nil, err
		}
		svc.Variants = datatypes.JSONSlice[domain.Variant](variants)
	}
	if req.Restore {
		svc.DeletedAt = nil
	}

	svc.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if svc.Deleted() {
		return nil
	}

	now := s.clock.Now()
	svc.DeletedAt = &now
	svc.UpdatedAt = now
	if err := s.repo.Save(ctx, s.db, svc); err != nil {
		return err
	}
	s.log.Info("service deleted", zap.String("service_id", svc.ID.String()))
	return nil
}

func normalizeVariants(in []domain.Variant) ([]domain.Variant, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidVariants
	}
	out := make([]domain.Variant, 0, len(in))
	for _, v := range in {
		name := strings.TrimSpace(v.Name)
		if name == "" || len(v.Prices) == 0 {
			return nil, domain.ErrInvalidVariants
		}
		for _, p := range v.Prices {
			if !p.Type.Valid() {
				return nil, domain.ErrInvalidPriceType
			}
			if p.Price.IsNegative() {
				return nil, domain.ErrInvalidPrice
			}
		}
		out = append(out, domain.Variant{Name: name, Prices: v.Prices})
	}
	return out, nil
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
