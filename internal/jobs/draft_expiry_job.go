package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// expiryActor is recorded as the last actor on orders cancelled by the job.
const expiryActor = "system:draft-expiry"

// DraftExpiryJob cancels draft orders that were never confirmed.
// Runs every minute and sweeps drafts last touched before the configured age.
type DraftExpiryJob struct {
	uowFactory    commands.KitchenUoWFactory
	cancelHandler commands.CancelOrderCommandHandler
	maxAge        time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewDraftExpiryJob creates a job that expires abandoned draft orders.
func NewDraftExpiryJob(
	uowFactory commands.KitchenUoWFactory,
	cancelHandler commands.CancelOrderCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *DraftExpiryJob {
	return &DraftExpiryJob{
		uowFactory:    uowFactory,
		cancelHandler: cancelHandler,
		maxAge:        maxAge,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "draft_expiry_job"),
	}
}

// Start begins the draft expiry job, running every minute.
func (j *DraftExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiry job started (running every minute)",
		"max_age", j.maxAge.String())
	return nil
}

// Stop stops the draft expiry job.
func (j *DraftExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}

func (j *DraftExpiryJob) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.maxAge)

	uow := j.uowFactory.Create()
	drafts, err := uow.OrderRepository().GetAllDraftsOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry sweep failed", "error", err)
		return
	}

	for _, draft := range drafts {
		cmd, cmdErr := commands.NewCancelOrderCommand(draft.ID(), expiryActor)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancel command",
				"order_id", draft.ID().String(), "error", cmdErr)
			continue
		}

		if cancelErr := j.cancelHandler.Handle(ctx, cmd); cancelErr != nil {
			// A draft confirmed between the listing and the cancel is
			// not an error worth alerting on.
			if errors.Is(cancelErr, errs.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to expire draft order",
				"order_id", draft.ID().String(), "error", cancelErr)
			continue
		}

		j.logger.InfoContext(ctx, "Expired draft order",
			"order_id", draft.ID().String(), "number", draft.Number().String())
	}
}
