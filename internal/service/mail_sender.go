package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"nearhelp/internal/config"
	"nearhelp/internal/domain"
	"nearhelp/internal/redis"
	"nearhelp/pkg/e"
)

// MailSender drains the alert queue and delivers email over SMTP.
type MailSender struct {
	logger *slog.Logger
	cfg    config.MailConfig
	queue  *redis.MailQueue
	send   func(job domain.AlertJob) error
}

func NewMailSender(logger *slog.Logger, cfg config.MailConfig, queue *redis.MailQueue) *MailSender {
	s := &MailSender{logger: logger, cfg: cfg, queue: queue}
	s.send = s.sendSMTP
	return s
}

func (s *MailSender) Run(ctx context.Context) {
	s.logger.Info("mailSender STARTED", slog.String("smtp_host", s.cfg.SMTPHost))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("mailSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		job, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.logger.Info("sending alert mail",
			slog.String("sos_id", job.SOSID.String()),
			slog.Int("recipients", len(job.To)))
		s.sendWithRetry(ctx, job)
	}
}

func (s *MailSender) sendWithRetry(ctx context.Context, job domain.AlertJob) {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}

		err := s.send(job)
		if err == nil {
			return
		}

		s.logger.Warn("mail delivery failed",
			slog.Int("attempt", attempt),
			slog.String("sos_id", job.SOSID.String()),
			slog.String("reason", err.Error()),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}

func (s *MailSender) sendSMTP(job domain.AlertJob) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(job.To, ", "),
		"Subject: " + job.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		job.Body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, s.cfg.From, job.To, []byte(msg))
}
