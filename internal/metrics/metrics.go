// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Credential service metrics
	IncSignup()
	IncLogin()
	IncAuthFailure()

	// Listing service metrics
	IncListingCreated()
	IncListingUpdated()
	IncListingDeleted()
	IncImageUploaded()
	IncImageDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
