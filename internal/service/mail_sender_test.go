package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"nearhelp/internal/config"
	"nearhelp/internal/domain"
)

func TestMailSender_RetriesThenGivesUp(t *testing.T) {
	t.Parallel()

	s := NewMailSender(slog.New(slog.NewTextHandler(io.Discard, nil)), config.MailConfig{}, nil)

	attempts := 0
	s.send = func(domain.AlertJob) error {
		attempts++
		return errors.New("connection refused")
	}

	s.sendWithRetry(context.Background(), domain.AlertJob{SOSID: uuid.New(), To: []string{"a@b.c"}})

	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestMailSender_StopsOnSuccess(t *testing.T) {
	t.Parallel()

	s := NewMailSender(slog.New(slog.NewTextHandler(io.Discard, nil)), config.MailConfig{}, nil)

	attempts := 0
	s.send = func(domain.AlertJob) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}

	s.sendWithRetry(context.Background(), domain.AlertJob{SOSID: uuid.New(), To: []string{"a@b.c"}})

	if attempts != 2 {
		t.Fatalf("expected success on second attempt, got %d attempts", attempts)
	}
}

func TestMailSender_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	s := NewMailSender(slog.New(slog.NewTextHandler(io.Discard, nil)), config.MailConfig{}, nil)

	attempts := 0
	s.send = func(domain.AlertJob) error {
		attempts++
		return errors.New("down")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.sendWithRetry(ctx, domain.AlertJob{SOSID: uuid.New()})

	if attempts != 0 {
		t.Fatalf("expected no attempts on cancelled context, got %d", attempts)
	}
}
