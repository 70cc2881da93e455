// Package ratelimit throttles calls to the expensive per-game upstream
// endpoint. The pipeline uses a single-slot interval limiter: one
// permitted call per interval, measured start-to-start, with the clock
// re-read after every sleep so overhead never accumulates as drift.
//
// The clock and sleep functions are injectable, which keeps the timing
// behavior fully deterministic under test.
package ratelimit
