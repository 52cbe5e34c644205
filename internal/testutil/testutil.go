// Package testutil provides helpers shared by integration tests.
package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/carhub/carhub/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:           UniqueID("user"),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$test-hash-not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestListing creates a test listing with sensible defaults.
func NewTestListing(t testing.TB, ownerID string) *model.Listing {
	t.Helper()
	now := time.Now().UTC()
	return &model.Listing{
		ID:          UniqueID("car"),
		OwnerID:     ownerID,
		Title:       "2014 Honda Civic",
		Description: "One owner, well maintained",
		Price:       8500,
		Tags:        []string{"honda", "sedan"},
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
