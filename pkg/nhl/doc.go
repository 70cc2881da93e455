// Package nhl wraps the two upstream operations the pipeline needs:
// listing game identifiers for a date and fetching the full play-by-play
// feed for a game. The game-log fetch is the expensive call and is the
// only one subject to rate limiting.
//
// Transport failures (non-success status, connection errors) surface as
// typed errors and are never retried here; the orchestrator decides
// whether to abort the date or the run.
package nhl
