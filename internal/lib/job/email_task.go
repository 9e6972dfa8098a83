package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskWelcome is the task type name stored in Redis.
const TaskWelcome = "email:welcome"

// WelcomeEmailPayload is the JSON payload of a welcome email task.
type WelcomeEmailPayload struct {
	To             string `json:"to"`
	Name           string `json:"name"`
	MembershipType string `json:"membership_type"`
}

// NewWelcomeEmailTask builds a welcome email task on the default queue,
// retried up to three times with a 30 second budget per attempt.
func NewWelcomeEmailTask(to, name, membershipType string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:             to,
		Name:           name,
		MembershipType: membershipType,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
