// Package consent tracks the visitor's analytics and marketing consent.
//
// The state lives entirely in a signed cookie; the server keeps nothing.
// A decision taken under an older policy version reads back as pending so
// the site asks again.
package consent
