package mailer

import "net/mail"

// Tags are provider tags attached to a message. Values may be strings or
// struct{}{} for presence-only tags.
type Tags map[string]any

// SimpleTags creates presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and address as an RFC 5322 address. The name is
// quoted, or encoded when it is not ASCII, so commas and quotes survive.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Email is a message ready for delivery.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	From    string
	ReplyTo string
	To      []string
}
