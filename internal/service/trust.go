package service

import (
	"context"
	"log/slog"

	"nearhelp/internal/domain"
	"nearhelp/internal/storage/postgres"

	"github.com/google/uuid"
)

// TrustLedger applies trust-score deltas and the suspension rule in one
// place so every caller agrees on the bounds.
type TrustLedger struct {
	logger *slog.Logger
	users  postgres.UserRepository
}

func NewTrustLedger(logger *slog.Logger, users postgres.UserRepository) *TrustLedger {
	return &TrustLedger{logger: logger, users: users}
}

// CreditResolve adds the resolve credit, capped at the score ceiling.
func (t *TrustLedger) CreditResolve(ctx context.Context, userID uuid.UUID) (float64, error) {
	score, err := t.users.AdjustTrust(ctx, userID, domain.ResolveTrustCredit)
	if err != nil {
		return 0, err
	}
	t.logger.Info("trust credited",
		slog.String("user_id", userID.String()),
		slog.Float64("trust_score", score))
	return score, nil
}

// PenalizeFalseAlert subtracts the false-alert penalty and suspends the
// account once the score falls to the threshold or below.
func (t *TrustLedger) PenalizeFalseAlert(ctx context.Context, userID uuid.UUID) (float64, bool, error) {
	score, err := t.users.AdjustTrust(ctx, userID, -domain.FalseAlertPenalty)
	if err != nil {
		return 0, false, err
	}

	suspended := false
	if score <= domain.SuspensionThreshold {
		if err := t.users.SetSuspended(ctx, userID, true); err != nil {
			return score, false, err
		}
		suspended = true
		t.logger.Warn("user suspended on low trust",
			slog.String("user_id", userID.String()),
			slog.Float64("trust_score", score))
	}

	t.logger.Info("trust penalized",
		slog.String("user_id", userID.String()),
		slog.Float64("trust_score", score),
		slog.Bool("suspended", suspended))
	return score, suspended, nil
}
