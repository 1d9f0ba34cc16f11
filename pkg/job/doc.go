// Package job runs background tasks on River, backed by Postgres.
//
// Tasks are plain types with a name and a typed handler:
//
//	type SendConfirmation struct{ mailer *mailer.Mailer }
//
//	func (SendConfirmation) Name() string { return "contact.send_confirmation" }
//
//	func (t SendConfirmation) Handle(ctx context.Context, p Payload) error { ... }
//
// and are registered on the Manager with WithTask. Every task travels in
// the same River job kind; the payload is JSON-encoded and decoded back into
// the handler's parameter type. A payload that cannot be decoded cancels the
// job instead of retrying it.
//
//	m, err := job.NewManager(pool, job.WithTask[Payload](SendConfirmation{mailer}))
//	err = m.Enqueue(ctx, "contact.send_confirmation", payload,
//		job.UniqueKey(submissionID, time.Hour),
//		job.MaxAttempts(5),
//	)
package job
