package ports

import "context"

// RateGate is the admission-control collaborator that runs before any
// authentication work. Allow reports whether the caller identified by key may
// proceed. The limiting algorithm behind it is opaque to the pipeline.
type RateGate interface {
	Allow(ctx context.Context, key string) (bool, error)
}
