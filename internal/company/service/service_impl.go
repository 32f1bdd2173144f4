package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/company/domain"
	"github.com/smallbiznis/hoteldesk/internal/media"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   domain.Repository
	Images media.ImageStore
	Clock  clock.Clock
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   domain.Repository
	images media.ImageStore
	clock  clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("company.service"),
		repo:   p.Repo,
		images: p.Images,
		clock:  p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (*domain.Profile, error) {
	profile, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &domain.Profile{ID: domain.ProfileID, Currency: domain.DefaultCurrency}, nil
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Profile, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	profile.Name = strings.TrimSpace(req.Name)
	profile.LegalName = strings.TrimSpace(req.LegalName)
	profile.Address = strings.TrimSpace(req.Address)
	profile.Phone = strings.TrimSpace(req.Phone)
	profile.Email = strings.TrimSpace(req.Email)
	profile.TaxID = strings.TrimSpace(req.TaxID)
	profile.BankDetails = strings.TrimSpace(req.BankDetails)
	profile.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if profile.Currency == "" {
		profile.Currency = domain.DefaultCurrency
	}

	if profile.Name == "" {
		return nil, domain.ErrInvalidName
	}
	if profile.Email != "" {
		if _, err := mail.ParseAddress(profile.Email); err != nil {
			return nil, domain.ErrInvalidEmail
		}
	}
	if !currencyPattern.MatchString(profile.Currency) {
		return nil, domain.ErrInvalidCurrency
	}

	profile.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) UploadLogo(ctx context.Context, encoded string) (*domain.Profile, error) {
	url, err := s.images.StoreImage(ctx, "company", encoded)
	if err != nil {
		return nil, err
	}
	profile, err := s.Get(ctx)
	if err != nil {
		s.images.RemoveImages(ctx, []string{url})
		return nil, err
	}
	previous := profile.LogoURL
	profile.LogoURL = url
	profile.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, profile); err != nil {
		s.images.RemoveImages(ctx, []string{url})
		return nil, err
	}
	if previous != "" {
		s.log.Debug("company logo replaced", zap.String("previous", previous), zap.String("logo_url", url))
	}
	return profile, nil
}

func (s *Service) EnsureDefault(ctx context.Context, name string) error {
	existing, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	profile := &domain.Profile{
		Name:      strings.TrimSpace(name),
		Currency:  domain.DefaultCurrency,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.repo.Save(ctx, s.db, profile); err != nil {
		return err
	}
	s.log.Info("seeded company profile", zap.String("name", profile.Name))
	return nil
}
