package staging

import "errors"

// Fatal staging conditions. Both abort the run before any build side
// effect: a container built without them would start unauthenticated.
var (
	// ErrMissingCredentials means the host credential file is absent.
	ErrMissingCredentials = errors.New("credentials file not found")

	// ErrMissingHostConfig means the host configuration file is absent.
	ErrMissingHostConfig = errors.New("host configuration not found")
)
