// Package db opens the Postgres pool backing the background job queue and
// applies the queue's schema migrations.
package db
