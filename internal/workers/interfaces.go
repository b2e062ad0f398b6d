// Package workers runs the server's background tasks.
//
// A Worker blocks in Run until its context is cancelled. Workers starts
// every registered worker in its own goroutine and waits for all of them.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must return promptly once ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
