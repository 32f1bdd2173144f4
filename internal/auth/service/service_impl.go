package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/auth/domain"
	"github.com/smallbiznis/hoteldesk/internal/auth/password"
	"github.com/smallbiznis/hoteldesk/internal/auth/token"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Issuer *token.Issuer
	Clock  clock.Clock
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	issuer *token.Issuer
	clock  clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		issuer: p.Issuer,
		clock:  p.Clock,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info("login rejected", zap.String("reason", "unknown_user"), zap.String("ip", req.IPAddress))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		s.log.Info("login rejected",
			zap.String("reason", "bad_password"),
			zap.String("user_id", user.ID.String()),
			zap.String("ip", req.IPAddress),
		)
		return nil, domain.ErrInvalidCredentials
	}

	raw, expiresAt, err := s.issuer.Issue(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{User: user, Token: raw, ExpiresAt: expiresAt}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error) {
	raw := strings.TrimSpace(rawToken)
	if raw == "" {
		return nil, domain.ErrInvalidSession
	}
	claims, err := s.issuer.Parse(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidSession
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidSession
	}
	return &domain.Principal{ID: claims.Subject, Email: claims.Email, Role: role}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if len(req.NewPassword) < password.MinLength {
		return domain.ErrWeakPassword
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, s.db, user.ID, map[string]any{
		"password_hash": hashed,
		"updated_at":    s.clock.Now(),
	})
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	role := req.Role
	if role == "" {
		role = domain.RoleManager
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(req.Password) < password.MinLength {
		return nil, domain.ErrWeakPassword
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultDisplayName(email)
	}

	if _, err := s.repo.FindByEmail(ctx, s.db, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *Service) DeleteUser(ctx context.Context, actorID, userID string) error {
	if strings.TrimSpace(actorID) == strings.TrimSpace(userID) {
		return domain.ErrCannotDeleteSelf
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.Role == domain.RoleAdmin {
			admins, err := s.repo.CountByRole(ctx, tx, domain.RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.ErrLastAdmin
			}
		}
		return s.repo.Delete(ctx, tx, user.ID)
	})
}

func (s *Service) EnsureAdmin(ctx context.Context, req domain.CreateUserRequest) error {
	admins, err := s.repo.CountByRole(ctx, s.db, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		s.log.Warn("no admin account exists and BOOTSTRAP_ADMIN_EMAIL is not set")
		return nil
	}
	req.Role = domain.RoleAdmin
	user, err := s.CreateUser(ctx, req)
	if err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", zap.String("user_id", user.ID.String()))
	return nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func defaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if strings.TrimSpace(local) != "" {
		return local
	}
	return email
}
