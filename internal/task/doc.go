// Package task runs background work on a bounded in-memory queue drained by a
// fixed pool of workers. Chat replies are sent this way so that webhook
// requests return immediately.
package task
