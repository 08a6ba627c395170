package jobs

import (
	"context"

	"tenantportal-backend/internal/logger"
)

// GenerateRecurringPayments creates next month's rent charges for all active
// leases. Runs on the first of the month; safe to re-run because existing
// charges are skipped.
func (jr *JobRunner) GenerateRecurringPayments() {
	jr.runWithRecovery("GenerateRecurringPayments", func() {
		created, skipped, err := jr.services.Admin.GenerateRecurringPayments(context.Background())
		if err != nil {
			logger.Error("Failed to generate recurring payments", "error", err)
			return
		}
		logger.Info("Recurring payment run finished", "created", created, "skipped", skipped)
	})
}

// SendPaymentReminders emails tenants whose rent falls due within the
// configured reminder window.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		sent, failed, err := jr.services.Payment.SendPaymentReminders(context.Background(), jr.config.Billing.ReminderDaysAhead)
		if err != nil {
			logger.Error("Failed to send payment reminders", "error", err)
			return
		}
		logger.Info("Payment reminder run finished", "sent", sent, "failed", failed)
	})
}

// SendOverdueNotices emails each tenant in arrears one aggregated summary.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		sent, failed, err := jr.services.Payment.SendOverdueReminders(context.Background())
		if err != nil {
			logger.Error("Failed to send overdue notices", "error", err)
			return
		}
		logger.Info("Overdue notice run finished", "sent", sent, "failed", failed)
	})
}

// SyncPaymentEvents backfills calendar entries for pending payments.
func (jr *JobRunner) SyncPaymentEvents() {
	jr.runWithRecovery("SyncPaymentEvents", func() {
		created, err := jr.services.Calendar.SyncPaymentEvents(context.Background())
		if err != nil {
			logger.Error("Failed to sync payment events", "error", err)
			return
		}
		logger.Info("Payment event sync finished", "created", created)
	})
}
