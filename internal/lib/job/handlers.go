package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask sends the welcome email for a newly activated
// user. Returning an error makes asynq retry per the task's MaxRetry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskWelcomeEmail).
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", TaskWelcomeEmail).
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	return nil
}

// handleInvoiceEmailTask sends the invoice notification email.
func (j *JobService) handleInvoiceEmailTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice email payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskInvoiceEmail).
		Str("to", p.To).
		Str("invoice", p.InvoiceNumber).
		Msg("processing invoice email task")

	if err := j.email.SendInvoiceEmail(p.To, p.ContactName, p.InvoiceNumber, p.Total, p.DueAt); err != nil {
		j.logger.Error().
			Str("type", TaskInvoiceEmail).
			Str("to", p.To).
			Str("invoice", p.InvoiceNumber).
			Err(err).
			Msg("failed to send invoice email")
		return err
	}

	return nil
}
