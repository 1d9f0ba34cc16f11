package contact_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/contact"
	"github.com/thermocore/leadapi/pkg/mailer"
)

func renderNotification(t *testing.T, data any) string {
	t.Helper()
	r := mailer.NewRenderer(contact.Templates())
	res, err := r.Render("pt-BR", "base.html", contact.TemplateNotification, data)
	require.NoError(t, err)
	return res.Text
}

type outbox struct {
	emails []*mailer.Email
	mu     sync.Mutex
}

func (o *outbox) Send(_ context.Context, e *mailer.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emails = append(o.emails, e)
	return nil
}

func newMailer(box *outbox) *mailer.Mailer {
	return mailer.New(box, mailer.NewRenderer(contact.Templates()), mailer.Config{
		FallbackSubject: "Contato",
		DefaultLayout:   "base.html",
		DefaultLanguage: "pt-BR",
	})
}

func TestTemplates_Notification(t *testing.T) {
	t.Parallel()

	box := &outbox{}
	s := contact.Submission{
		Name:    "Ana *Souza*",
		Email:   "ana@x.com",
		Company: "Acme | Filhos",
		Urgency: "high",
		Message: "Linha 1\n\n# não é título",
	}
	meta := contact.Meta{ID: "01JXAMPLE", Language: "en", ReceivedAt: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)}

	out := contact.NewMailDispatcher(newMailer(box), "leads@thermocore.com.br").
		Dispatch(context.Background(), s, meta)
	require.True(t, out.NotificationSent)
	require.True(t, out.ConfirmationSent)
	require.Len(t, box.emails, 2)

	var notification, confirmation *mailer.Email
	for _, e := range box.emails {
		if e.To[0] == "leads@thermocore.com.br" {
			notification = e
		} else {
			confirmation = e
		}
	}
	require.NotNil(t, notification)
	require.NotNil(t, confirmation)

	assert.Equal(t, "Novo contato pelo site: Ana *Souza*", notification.Subject)
	assert.Equal(t, `"Ana *Souza*" <ana@x.com>`, notification.ReplyTo)
	assert.Equal(t, "01JXAMPLE", notification.Headers["X-Entity-Ref-ID"])
	assert.Contains(t, notification.Text, `Ana \*Souza\*`)
	assert.Contains(t, notification.Text, `Acme \| Filhos`)
	assert.Contains(t, notification.Text, "| Telefone | - |")
	assert.Contains(t, notification.Text, "> Linha 1\n>\n> \\# não é título")
	assert.Contains(t, notification.Text, "recebido em 2025-06-02T14:00:00Z")
	assert.NotContains(t, notification.HTML, "<em>Souza</em>")
	assert.NotContains(t, notification.HTML, "<h1>")
	assert.Contains(t, notification.HTML, `<html lang="pt-BR">`)

	assert.Equal(t, "We received your message", confirmation.Subject)
	assert.Equal(t, []string{`"Ana *Souza*" <ana@x.com>`}, confirmation.To)
	assert.Contains(t, confirmation.Text, "01JXAMPLE")
}

func TestTemplates_ConfirmationLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang    string
		subject string
	}{
		{"pt-BR", "Recebemos sua mensagem"},
		{"en", "We received your message"},
		{"", "Recebemos sua mensagem"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			box := &outbox{}
			task := contact.NewConfirmationTask(newMailer(box))
			require.NoError(t, task.Handle(context.Background(), contact.ConfirmationPayload{
				ID: "01JXAMPLE", Name: "Ana", Email: "ana@x.com", Language: tt.lang,
			}))
			require.Len(t, box.emails, 1)
			assert.Equal(t, tt.subject, box.emails[0].Subject)
		})
	}
}

func TestTemplates_NoAttachmentsSection(t *testing.T) {
	t.Parallel()

	text := renderNotification(t, struct {
		contact.Submission
		ID          string
		ReceivedAt  string
		Language    string
		Attachments []contact.Attachment
	}{Submission: valid(), ID: "x"})

	assert.NotContains(t, text, "Anexos")
	assert.Contains(t, text, "idioma pt-BR")
}
