package usecase

import "time"

const (
	// maxTransferRetries bounds how often a transfer is re-attempted after
	// a concurrency conflict before ErrConflict surfaces to the caller.
	maxTransferRetries = 3

	// Backoff between conflict retries.
	retryInitialInterval = 10 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond

	defaultListLimit = 50
)
