// Package timeouts defines shared durations used across lingo processes.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// LivenessTick is the page-driven interval at which browsers re-check
// token liveness and the server sweeps idle browser sessions.
const LivenessTick = 30 * time.Second

// NoticeDismiss is how long success notices stay on screen.
const NoticeDismiss = 4 * time.Second
