package service

import "github.com/oklog/ulid/v2"

// newID generates a sortable unique identifier for stored documents.
func newID() string {
	return ulid.Make().String()
}
