// Package mailer renders localized markdown email templates and hands the
// result to a delivery provider.
//
// A Mailer combines a Sender (the provider, see the resend subpackage) with a
// Renderer. Templates are markdown files with optional YAML frontmatter and
// are looked up per language first:
//
//	{lang}/{template}   e.g. pt-BR/contact_notification.md
//	{template}          fallback
//
// The frontmatter "Subject" key is itself a text/template evaluated against
// the same data as the body:
//
//	---
//	Subject: Novo contato de {{.Name}}
//	---
//	**{{.Name}}** enviou uma mensagem.
//
// Rendering produces both HTML (wrapped in a layout from the layouts
// directory) and a plain text alternative taken from the processed markdown.
//
// LogSender writes messages to a slog.Logger instead of delivering them and
// is meant for local development when no provider is configured.
package mailer
