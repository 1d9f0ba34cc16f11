package mailer

import (
	"context"
	"errors"
	"strings"
	texttemplate "text/template"
)

// Mailer renders templates and sends them through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	Data     any
	Headers  map[string]string
	Tags     Tags
	To       string
	Template string
	Lang     string // defaults to Config.DefaultLanguage
	Subject  string // overrides the template subject
	Layout   string
	ReplyTo  string
}

// Send renders params.Template and delivers it.
// Subject precedence: params.Subject, template frontmatter, Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if strings.TrimSpace(params.To) == "" {
		return ErrNoRecipient
	}

	lang := params.Lang
	if lang == "" {
		lang = m.config.DefaultLanguage
	}
	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(lang, layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = result.Metadata["Subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	subject, err = renderSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
}

// SendRaw delivers a prepared email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "":
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func renderSubject(subject string, data any) (string, error) {
	if !strings.Contains(subject, "{{") {
		return subject, nil
	}
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	// Subjects are single line.
	return strings.Join(strings.Fields(sb.String()), " "), nil
}
