package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups         uint64
	Logins          uint64
	AuthFailures    uint64
	ListingsCreated uint64
	ListingsUpdated uint64
	ListingsDeleted uint64
	ImagesUploaded  uint64
	ImagesDeleted   uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	signups         uint64
	logins          uint64
	authFailures    uint64
	listingsCreated uint64
	listingsUpdated uint64
	listingsDeleted uint64
	imagesUploaded  uint64
	imagesDeleted   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:         atomic.LoadUint64(&m.signups),
		Logins:          atomic.LoadUint64(&m.logins),
		AuthFailures:    atomic.LoadUint64(&m.authFailures),
		ListingsCreated: atomic.LoadUint64(&m.listingsCreated),
		ListingsUpdated: atomic.LoadUint64(&m.listingsUpdated),
		ListingsDeleted: atomic.LoadUint64(&m.listingsDeleted),
		ImagesUploaded:  atomic.LoadUint64(&m.imagesUploaded),
		ImagesDeleted:   atomic.LoadUint64(&m.imagesDeleted),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counter.
func (m *InMemoryRecorder) IncLogin() {
	atomic.AddUint64(&m.logins, 1)
}

// IncAuthFailure increments the auth failure counter.
func (m *InMemoryRecorder) IncAuthFailure() {
	atomic.AddUint64(&m.authFailures, 1)
}

// IncListingCreated increments the listing created counter.
func (m *InMemoryRecorder) IncListingCreated() {
	atomic.AddUint64(&m.listingsCreated, 1)
}

// IncListingUpdated increments the listing updated counter.
func (m *InMemoryRecorder) IncListingUpdated() {
	atomic.AddUint64(&m.listingsUpdated, 1)
}

// IncListingDeleted increments the listing deleted counter.
func (m *InMemoryRecorder) IncListingDeleted() {
	atomic.AddUint64(&m.listingsDeleted, 1)
}

// IncImageUploaded increments the image uploaded counter.
func (m *InMemoryRecorder) IncImageUploaded() {
	atomic.AddUint64(&m.imagesUploaded, 1)
}

// IncImageDeleted increments the image deleted counter.
func (m *InMemoryRecorder) IncImageDeleted() {
	atomic.AddUint64(&m.imagesDeleted, 1)
}
