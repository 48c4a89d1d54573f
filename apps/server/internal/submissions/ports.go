package submissions

import "context"

// Archiver durably stores one submission in the target repository.
// The concrete implementation lives in the adapters layer (GitHub contents
// API); tests use the in-memory stand-in. A call is a single attempt — the
// implementation must not retry.
type Archiver interface {
	Put(ctx context.Context, d Descriptor) error
}
