package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nearhelp/internal/config"
	"nearhelp/internal/domain"
	"nearhelp/internal/storage/postgres"
	"nearhelp/pkg/e"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	logger *slog.Logger
	cfg    config.AuthConfig
	users  postgres.UserRepository
}

func NewAuthService(logger *slog.Logger, cfg config.AuthConfig, users postgres.UserRepository) *Auth {
	return &Auth{logger: logger, cfg: cfg, users: users}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
}

func (s *Auth) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	const op = "service.Auth.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Skills:       req.Skills,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

func (s *Auth) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	const op = "service.Auth.Login"

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if user.Suspended {
		return nil, "", fmt.Errorf("%s: account suspended: %w", op, e.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return user, token, nil
}

// Authenticate verifies a bearer token and returns the caller identity.
func (s *Auth) Authenticate(_ context.Context, raw string) (domain.Identity, error) {
	const op = "service.Auth.Authenticate"

	var claims accessClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, e.ErrUnauthenticated)
	}

	role := claims.Role
	if role == "" {
		role = domain.RoleUser
	}

	return domain.Identity{UserID: userID, Role: role, Email: claims.Email}, nil
}

func (s *Auth) issueToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Role:  user.Role,
		Email: user.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}
