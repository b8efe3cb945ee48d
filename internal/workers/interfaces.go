// Package workers bounds how much CPU-heavy work runs at the same time.
// Password hashing is the main client: each argon2id computation takes tens
// of milliseconds and a fixed amount of memory, so letting every request
// hash at once would exhaust both.
package workers

import "context"

// Pool runs jobs with bounded concurrency.
//
// Example usage:
//
//	err := pool.Do(ctx, func() error {
//	    hash, err = hasher.Hash(password)
//	    return err
//	})
type Pool interface {
	// Do blocks until a slot is free (or ctx is done), runs job in the
	// calling goroutine and returns its error. If ctx is done before a slot
	// frees up, job is not run and ctx.Err() is returned.
	Do(ctx context.Context, job func() error) error
}
