package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin() {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure() {}

// IncListingCreated is a no-op.
func (n *NoopRecorder) IncListingCreated() {}

// IncListingUpdated is a no-op.
func (n *NoopRecorder) IncListingUpdated() {}

// IncListingDeleted is a no-op.
func (n *NoopRecorder) IncListingDeleted() {}

// IncImageUploaded is a no-op.
func (n *NoopRecorder) IncImageUploaded() {}

// IncImageDeleted is a no-op.
func (n *NoopRecorder) IncImageDeleted() {}
