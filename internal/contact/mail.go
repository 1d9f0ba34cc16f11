package contact

import (
	"embed"
	"io/fs"
	"time"

	"github.com/thermocore/leadapi/pkg/mailer"
)

// Email template names.
const (
	TemplateNotification = "notification.md"
	TemplateConfirmation = "confirmation.md"
)

//go:embed templates
var templates embed.FS

// Templates holds the email templates laid out for mailer.NewRenderer:
// {lang}/{name}.md, {name}.md and layouts/.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Attachment is a file reference with the link the team can open.
type Attachment struct {
	Ref string
	URL string
}

type notificationData struct {
	Submission
	ID          string
	ReceivedAt  string
	Language    string
	Attachments []Attachment
}

// ConfirmationPayload is everything the confirmation email needs. It is
// also the payload of the retry task.
type ConfirmationPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Language string `json:"language"`
}

func notificationParams(to string, s Submission, meta Meta, attachments []Attachment) mailer.SendParams {
	return mailer.SendParams{
		To:       to,
		ReplyTo:  mailer.Recipient(s.Name, s.Email),
		Template: TemplateNotification,
		Lang:     "pt-BR",
		Tags:     mailer.Tags{"category": "contact-notification"},
		Headers:  map[string]string{"X-Entity-Ref-ID": meta.ID},
		Data: notificationData{
			Submission:  s,
			ID:          meta.ID,
			ReceivedAt:  meta.ReceivedAt.UTC().Format(time.RFC3339),
			Language:    meta.Language,
			Attachments: attachments,
		},
	}
}

func confirmationParams(p ConfirmationPayload) mailer.SendParams {
	return mailer.SendParams{
		To:       mailer.Recipient(p.Name, p.Email),
		Template: TemplateConfirmation,
		Lang:     p.Language,
		Tags:     mailer.Tags{"category": "contact-confirmation"},
		Headers:  map[string]string{"X-Entity-Ref-ID": p.ID},
		Data:     p,
	}
}
