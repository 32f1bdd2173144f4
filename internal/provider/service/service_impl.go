package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/provider/domain"
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

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("provider.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    p.Clock,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.Request) (*domain.Provider, error) {
	now := s.clock.Now()
	provider := &domain.Provider{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		ContactName: strings.TrimSpace(req.ContactName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(provider); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, s.db, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Provider, error) {
	providerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || providerID == 0 {
		return nil, domain.ErrInvalidID
	}
	provider, err := s.repo.FindByID(ctx, s.db, providerID, repository.NotDeleted())
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	return provider, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Provider], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	opts := []repository.QueryOption{
		repository.NotDeleted(),
		repository.Search(req.Q, "name", "contact_name"),
	}
	if category := strings.ToLower(strings.TrimSpace(req.Category)); category != "" {
		opts = append(opts, repository.Where("category = ?", category))
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Provider]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Provider, error) {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&provider.Name, patch.Name)
	set(&provider.Category, patch.Category)
	provider.Category = strings.ToLower(provider.Category)
	set(&provider.ContactName, patch.ContactName)
	set(&provider.Phone, patch.Phone)
	set(&provider.Email, patch.Email)
	set(&provider.Address, patch.Address)
	set(&provider.Notes, patch.Notes)
	if err := validate(provider); err != nil {
		return nil, err
	}

	provider.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	provider.DeletedAt = &now
	provider.UpdatedAt = now
	return s.repo.Save(ctx, s.db, provider)
}

func validate(p *domain.Provider) error {
	if p.Name == "" {
		return domain.ErrInvalidName
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return domain.ErrInvalidEmail
		}
	}
	return nil
}
