package user

import (
	"context"
	"errors"
	"strings"

	"gridiron-be/internal/auth"
	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest, role auth.Role) (*User, error)
	AuthenticateUser(ctx context.Context, req AuthenticateUserRequest) (*ProfileResponse, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo   Repository
	tx     db.Transactor
	tokens *auth.TokenManager
}

func NewService(repo Repository, tx db.Transactor, tokens *auth.TokenManager) Service {
	return &service{repo: repo, tx: tx, tokens: tokens}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest, role auth.Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateUser"),
		zap.String("email", req.Email),
		zap.String("role", string(role)),
	)

	email := strings.TrimSpace(req.Email)

	var created *User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrAccountExists
		}

		hashed, err := HashPassword(req.Password)
		if err != nil {
			log.Error("failed to hash password", zap.Error(err))
			return err
		}

		u := &User{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     email,
			Password:  hashed,
			Roles:     []auth.Role{role},
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAccountExists) {
			log.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}

	log.Info("user created", zap.Int64("user_id", created.ID))
	return created, nil
}

func (s *service) AuthenticateUser(ctx context.Context, req AuthenticateUserRequest) (*ProfileResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AuthenticateUser"),
	)

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		log.Error("failed to find user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidAccount
	}

	if !CheckPasswordHash(req.Password, u.Password) {
		log.Warn("password mismatch", zap.Int64("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Roles)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	return &ProfileResponse{
		Token:        token,
		UserID:       u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.Email,
		Roles:        u.Roles,
	}, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account. It is a no-op when
// email is empty or the account already exists.
func (s *service) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	log := logger.FromCtx(ctx).With(zap.String("method", "EnsureDefaultAdmin"))

	if email == "" || password == "" {
		log.Info("default admin not configured")
		return nil
	}

	_, err := s.CreateUser(ctx, CreateUserRequest{
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
	}, auth.RoleAdmin)
	if errors.Is(err, ErrAccountExists) {
		log.Info("default admin already exists", zap.String("email", email))
		return nil
	}
	return err
}
