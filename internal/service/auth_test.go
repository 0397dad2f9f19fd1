package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nearhelp/internal/config"
	"nearhelp/internal/domain"
	"nearhelp/internal/service"
	mock_postgres "nearhelp/internal/storage/postgres/mocks"
	"nearhelp/pkg/e"
)

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestAuthService_RegisterIssuesUsableToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock_postgres.NewMockUserRepository(ctrl)

	var created *domain.User
	users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.User) error {
			user.ID = uuid.New()
			user.Role = domain.RoleUser
			created = user
			return nil
		})

	svc := service.NewAuthService(testLogger(), authConfig(), users)

	user, token, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Dana",
		Email:    " Dana@Example.COM ",
		Password: "hunter22",
		Skills:   []string{"first_aid"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if created.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plaintext")
	}

	identity, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	if identity.UserID != user.ID {
		t.Fatalf("identity mismatch")
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("unexpected role %s", identity.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	users := mock_postgres.NewMockUserRepository(ctrl)
	users.EXPECT().
		GetByEmail(gomock.Any(), "dana@example.com").
		Return(&domain.User{ID: uuid.New(), Email: "dana@example.com", PasswordHash: string(hash)}, nil)

	svc := service.NewAuthService(testLogger(), authConfig(), users)

	_, _, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, e.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Login_SuspendedAccount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	users := mock_postgres.NewMockUserRepository(ctrl)
	users.EXPECT().
		GetByEmail(gomock.Any(), "dana@example.com").
		Return(&domain.User{
			ID:           uuid.New(),
			Email:        "dana@example.com",
			PasswordHash: string(hash),
			Suspended:    true,
		}, nil)

	svc := service.NewAuthService(testLogger(), authConfig(), users)

	// Even the right password must not unlock a suspended account.
	_, _, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct",
	})
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock_postgres.NewMockUserRepository(ctrl)
	users.EXPECT().
		GetByEmail(gomock.Any(), "nobody@example.com").
		Return(nil, fmt.Errorf("get: %w", e.ErrNotFound))

	svc := service.NewAuthService(testLogger(), authConfig(), users)

	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, e.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Authenticate_Garbage(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(testLogger(), authConfig(), nil)

	if _, err := svc.Authenticate(context.Background(), "not-a-jwt"); !errors.Is(err, e.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock_postgres.NewMockUserRepository(ctrl)
	users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.User) error {
			user.ID = uuid.New()
			return nil
		})

	issuer := service.NewAuthService(testLogger(), authConfig(), users)
	_, token, err := issuer.Register(context.Background(), domain.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatal(err)
	}

	verifier := service.NewAuthService(testLogger(), config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour}, nil)
	if _, err := verifier.Authenticate(context.Background(), token); !errors.Is(err, e.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
