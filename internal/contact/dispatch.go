package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thermocore/leadapi/pkg/job"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/mailer"
)

// Defaults for MailDispatcher.
const (
	DefaultSendTimeout = 10 * time.Second
	AttachmentURLTTL   = 7 * 24 * time.Hour
	confirmationDedup  = 24 * time.Hour
)

var (
	ErrSendTimeout = errors.New("contact: email send timed out")
	ErrSendPanic   = errors.New("contact: email transport panicked")
)

// Meta carries what the dispatcher needs besides the submission.
type Meta struct {
	ReceivedAt time.Time
	ID         string
	Language   string
}

// Outcome reports each email independently. Only NotificationSent decides
// whether the submission succeeded.
type Outcome struct {
	NotificationErr    error
	ConfirmationErr    error
	NotificationSent   bool
	ConfirmationSent   bool
	ConfirmationQueued bool
}

// Dispatcher sends the emails for an accepted submission.
type Dispatcher interface {
	Dispatch(ctx context.Context, s Submission, meta Meta) Outcome
}

// Mailer is the part of *mailer.Mailer the dispatcher uses.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Linker turns a stored file key into a URL, e.g. *storage.S3.
type Linker interface {
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Enqueuer queues background work, e.g. *job.Manager.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// MailDispatcher sends the business notification and the submitter
// confirmation concurrently, each under its own timeout.
type MailDispatcher struct {
	mailer   Mailer
	linker   Linker
	queue    Enqueuer
	logger   *slog.Logger
	notifyTo string
	timeout  time.Duration
}

// DispatchOption configures a MailDispatcher.
type DispatchOption func(*MailDispatcher)

// WithSendTimeout bounds each email send.
func WithSendTimeout(d time.Duration) DispatchOption {
	return func(m *MailDispatcher) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLinker resolves attachment references to signed URLs.
func WithLinker(l Linker) DispatchOption {
	return func(m *MailDispatcher) {
		m.linker = l
	}
}

// WithRetryQueue queues a failed confirmation for a background retry.
func WithRetryQueue(q Enqueuer) DispatchOption {
	return func(m *MailDispatcher) {
		m.queue = q
	}
}

func WithDispatchLogger(l *slog.Logger) DispatchOption {
	return func(m *MailDispatcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMailDispatcher creates a MailDispatcher delivering notifications to
// notifyTo.
func NewMailDispatcher(m Mailer, notifyTo string, opts ...DispatchOption) *MailDispatcher {
	d := &MailDispatcher{
		mailer:   m,
		notifyTo: notifyTo,
		timeout:  DefaultSendTimeout,
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch never returns an error: transport failures, timeouts and panics
// are recorded per email in the Outcome.
func (d *MailDispatcher) Dispatch(ctx context.Context, s Submission, meta Meta) Outcome {
	attachments := d.attachments(ctx, s.Files)
	confirmation := ConfirmationPayload{
		ID:       meta.ID,
		Name:     s.Name,
		Email:    s.Email,
		Language: meta.Language,
	}

	var out Outcome
	var g errgroup.Group
	g.Go(func() error {
		out.NotificationErr = d.send(ctx, "notification", notificationParams(d.notifyTo, s, meta, attachments))
		return nil
	})
	g.Go(func() error {
		out.ConfirmationErr = d.send(ctx, "confirmation", confirmationParams(confirmation))
		return nil
	})
	_ = g.Wait()

	out.NotificationSent = out.NotificationErr == nil
	out.ConfirmationSent = out.ConfirmationErr == nil

	if !out.ConfirmationSent && d.queue != nil {
		err := d.queue.Enqueue(context.WithoutCancel(ctx), TaskSendConfirmation, confirmation,
			job.UniqueKey(meta.ID, confirmationDedup),
			job.Tags("contact"),
		)
		if err != nil {
			d.logger.WarnContext(ctx, "failed to queue confirmation retry",
				slog.String("submission_id", meta.ID), logger.Error(err))
		} else {
			out.ConfirmationQueued = true
		}
	}

	return out
}

func (d *MailDispatcher) send(ctx context.Context, kind string, params mailer.SendParams) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrSendPanic, r)
			}
		}()
		done <- d.mailer.Send(ctx, params)
	}()

	var err error
	select {
	case err = <-done:
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.Join(ErrSendTimeout, err)
		}
	case <-ctx.Done():
		err = errors.Join(ErrSendTimeout, ctx.Err())
	}

	if err != nil {
		d.logger.ErrorContext(ctx, "email send failed",
			slog.String("email", kind),
			slog.String("template", params.Template),
			logger.Error(err))
	}
	return err
}

func (d *MailDispatcher) attachments(ctx context.Context, refs []string) []Attachment {
	out := make([]Attachment, 0, len(refs))
	for _, ref := range refs {
		a := Attachment{Ref: ref}
		if d.linker != nil && strings.HasPrefix(ref, UploadPrefix+"/") {
			url, err := d.linker.URL(ctx, ref, AttachmentURLTTL)
			if err != nil {
				d.logger.WarnContext(ctx, "attachment link failed", slog.String("ref", ref), logger.Error(err))
			} else {
				a.URL = url
			}
		}
		out = append(out, a)
	}
	return out
}
