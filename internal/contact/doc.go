// Package contact implements the contact form pipeline: rate limiting,
// sanitization, validation, email dispatch and attachment uploads.
package contact
