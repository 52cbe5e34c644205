package model

import (
	"strings"
	"time"
)

// MaxListingImages is the maximum number of remote images a listing may hold.
const MaxListingImages = 10

// Listing represents a car listing owned by a single account.
type Listing struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Tags        []string  `json:"tags" bson:"tags"`
	Images      []string  `json:"images" bson:"images"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ListingUpdate carries the optional fields of a partial listing update.
// Nil fields are left untouched.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Tags        *[]string
	Images      *[]string
}

// OwnedBy reports whether the listing belongs to the given account.
func (l *Listing) OwnedBy(userID string) bool {
	return l.OwnerID == userID
}

// Matches reports whether keyword appears case-insensitively in the
// title, description, or any tag.
func (l *Listing) Matches(keyword string) bool {
	k := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(l.Title), k) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Description), k) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), k) {
			return true
		}
	}
	return false
}
