package ports

// Trigger exposes the pipeline's user-facing actions (generate, verify,
// usage) over some surface, e.g. an HTTP API
type Trigger interface {
	// Start starts serving the trigger surface
	Start() error

	// Stop stops serving the trigger surface
	Stop() error
}
