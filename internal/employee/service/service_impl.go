package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/employee/domain"
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
		log:      p.Log.Named("employee.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    p.Clock,
		settings: p.Settings,
	}
}

func (s *Service) Create(ctx context.Context, req domain.Request) (*domain.Employee, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	now := s.clock.Now()
	employee := &domain.Employee{
		ID:        s.genID.Generate(),
		FullName:  strings.TrimSpace(req.FullName),
		Position:  strings.TrimSpace(req.Position),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Salary:    req.Salary,
		JoinedAt:  dateOnly(req.JoinedAt),
		Active:    active,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate(employee); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, s.db, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employeeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || employeeID == 0 {
		return nil, domain.ErrInvalidID
	}
	employee, err := s.repo.FindByID(ctx, s.db, employeeID, repository.NotDeleted())
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Employee], error) {
	limits := s.settings.Get().Pagination
	page := req.Page.Normalize(limits.DefaultLimit, limits.MaxLimit)

	opts := []repository.QueryOption{
		repository.NotDeleted(),
		repository.Search(req.Q, "full_name", "position"),
	}
	if req.Active != nil {
		opts = append(opts, repository.Where("active = ?", *req.Active))
	}

	items, total, err := s.repo.List(ctx, s.db, page, opts...)
	if err != nil {
		return pagination.Result[domain.Employee]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		employee.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Position != nil {
		employee.Position = strings.TrimSpace(*patch.Position)
	}
	if patch.Phone != nil {
		employee.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		employee.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Salary != nil {
		employee.Salary = *patch.Salary
	}
	if patch.JoinedAt != nil {
		employee.JoinedAt = dateOnly(patch.JoinedAt)
	}
	if patch.Active != nil {
		employee.Active = *patch.Active
	}
	if patch.Notes != nil {
		employee.Notes = strings.TrimSpace(*patch.Notes)
	}
	if err := validate(employee); err != nil {
		return nil, err
	}

	employee.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	employee.DeletedAt = &now
	employee.UpdatedAt = now
	if err := s.repo.Save(ctx, s.db, employee); err != nil {
		return err
	}
	s.log.Info("employee removed", zap.String("employee_id", employee.ID.String()))
	return nil
}

func validate(e *domain.Employee) error {
	if e.FullName == "" {
		return domain.ErrInvalidName
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			return domain.ErrInvalidEmail
		}
	}
	if e.Salary.IsNegative() {
		return domain.ErrInvalidSalary
	}
	return nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
