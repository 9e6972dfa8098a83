package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask sends the welcome email described by t.
// A malformed payload is skipped rather than retried.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskWelcome).
		Str("to", p.To).
		Logger()

	log.Info().Msg("processing welcome email task")

	if err := j.emails.SendWelcomeEmail(ctx, p.To, p.Name, p.MembershipType); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("successfully sent welcome email")
	return nil
}
