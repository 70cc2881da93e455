// Package storage owns the persisted schema and every write path into
// it: idempotent game/event upserts, the per-date collection ledger
// that makes interrupted runs resumable, the legacy table migration,
// and the advisory data-quality audit.
//
// All failures surface as typed storage errors and are treated as fatal
// by the caller; nothing in this package retries.
package storage
