package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names. asynq routes tasks to handlers by these strings.
const (
	TaskWelcomeEmail = "email:welcome"
	TaskInvoiceEmail = "email:invoice"
	TaskLeadRescore  = "lead:rescore"
)

// WelcomeEmailPayload is the payload for TaskWelcomeEmail.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask enqueues onto the default queue with 3 retries.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcomeEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// InvoiceEmailPayload is the payload for TaskInvoiceEmail.
type InvoiceEmailPayload struct {
	To            string `json:"to"`
	ContactName   string `json:"contact_name"`
	InvoiceNumber string `json:"invoice_number"`
	Total         string `json:"total"`
	DueAt         string `json:"due_at,omitempty"`
}

// NewInvoiceEmailTask enqueues onto the critical queue: invoice sends
// are user-visible actions and should not wait behind rescoring.
func NewInvoiceEmailTask(p InvoiceEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceEmail,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewLeadRescoreTask recomputes scores for all open leads. Low queue:
// rescoring is maintenance work.
func NewLeadRescoreTask() *asynq.Task {
	return asynq.NewTask(
		TaskLeadRescore,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue("low"),
		asynq.Timeout(5*time.Minute),
	)
}
