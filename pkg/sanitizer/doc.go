// Package sanitizer cleans untrusted text before it is validated, stored
// or sent in an email.
//
// HTML helpers are backed by bluemonday policies. Text helpers turn
// arbitrary input into plain text: Line for single-line fields,
// Paragraphs for free text and Email for addresses. All text helpers are
// idempotent.
package sanitizer
