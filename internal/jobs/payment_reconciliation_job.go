package jobs

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// reconciliationSchedule runs the sweep every five minutes. The webhook
// path confirms most payments within seconds; the sweep only has to
// catch confirmations lost between provider and API.
const reconciliationSchedule = "0 */5 * * * *"

// PaymentReconciliationJob periodically sweeps orders awaiting payment
// and asks the provider whether a completed capture exists for them.
// Recovered confirmations run through the same command as client-driven
// ones, under the payment service principal.
type PaymentReconciliationJob struct {
	orders   ports.OrderRepository
	verifier ports.PaymentVerifier
	handler  commands.MarkOrderPaidCommandHandler
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentReconciliationJob creates the reconciliation job.
func NewPaymentReconciliationJob(
	orders ports.OrderRepository,
	verifier ports.PaymentVerifier,
	handler commands.MarkOrderPaidCommandHandler,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		orders:   orders,
		verifier: verifier,
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_reconciliation_job"),
	}
}

// Start schedules the reconciliation sweep.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment reconciliation sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started (running every five minutes)")
	return nil
}

// Stop stops the reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}

// Run executes one reconciliation sweep. A failure on one order does not
// stop the sweep; the order is retried on the next run.
func (j *PaymentReconciliationJob) Run(ctx context.Context) error {
	awaiting, err := j.orders.GetAllInCreatedStatus(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range awaiting {
		verified, err := j.verifier.FindCompletedByOrder(ctx, aggregate.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment lookup failed",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		cmd, err := commands.NewMarkOrderPaidCommand(
			principal.NewPaymentServicePrincipal(),
			aggregate.ID(),
			verified.TransactionID,
			verified.PayerEmail,
			verified.Status,
		)
		if err != nil {
			j.logger.ErrorContext(ctx, "Recovered capture is not confirmable",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Recovered payment confirmation failed",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Recovered lost payment confirmation",
			"order_id", aggregate.ID().String(),
			"transaction_id", verified.TransactionID)
	}

	return nil
}
