package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/thermocore/leadapi/pkg/job"
	"github.com/thermocore/leadapi/pkg/mailer"
)

// TaskSendConfirmation retries a confirmation email that failed inline.
const TaskSendConfirmation = "contact.send_confirmation"

// ConfirmationTask is the job.Task behind TaskSendConfirmation.
type ConfirmationTask struct {
	mailer Mailer
}

func NewConfirmationTask(m Mailer) *ConfirmationTask {
	return &ConfirmationTask{mailer: m}
}

func (*ConfirmationTask) Name() string { return TaskSendConfirmation }

// Handle sends the confirmation. A payload without an address is
// cancelled instead of retried.
func (t *ConfirmationTask) Handle(ctx context.Context, p ConfirmationPayload) error {
	if p.Email == "" {
		return fmt.Errorf("%w: %w", job.ErrInvalidPayload, mailer.ErrNoRecipient)
	}
	if err := t.mailer.Send(ctx, confirmationParams(p)); err != nil {
		return errors.Join(fmt.Errorf("contact: confirmation %s", p.ID), err)
	}
	return nil
}
