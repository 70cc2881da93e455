// Package scraper orchestrates incremental collection of play-by-play
// data: it walks a date range, lists the games scheduled each day,
// decides skip-vs-fetch per game, and records per-date progress in the
// collection ledger so interrupted runs resume without re-fetching or
// duplicating anything.
package scraper
