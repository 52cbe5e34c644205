package dto

import (
	"time"

	"github.com/carhub/carhub/internal/model"
)

// UpdateListingRequest represents the request body for updating a listing.
// Nil fields are left untouched.
type UpdateListingRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}

// ToUpdate converts the request into the domain update type.
func (r *UpdateListingRequest) ToUpdate() model.ListingUpdate {
	return model.ListingUpdate{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Tags:        r.Tags,
		Images:      r.Images,
	}
}

// DeleteImageRequest represents the request body for removing one image.
type DeleteImageRequest struct {
	ImageURL string `json:"image_url"`
}

// ListingResponse represents a listing in API responses.
type ListingResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListingListResponse represents a list of listings.
type ListingListResponse struct {
	Data []ListingResponse `json:"data"`
}

// ToListingResponse converts a Listing model to ListingResponse DTO.
func ToListingResponse(listing *model.Listing) *ListingResponse {
	tags := listing.Tags
	if tags == nil {
		tags = []string{}
	}
	images := listing.Images
	if images == nil {
		images = []string{}
	}
	return &ListingResponse{
		ID:          listing.ID,
		OwnerID:     listing.OwnerID,
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Tags:        tags,
		Images:      images,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
}

// ToListingListResponse converts a slice of Listing models to ListingListResponse.
func ToListingListResponse(listings []*model.Listing) *ListingListResponse {
	responses := make([]ListingResponse, len(listings))
	for i, listing := range listings {
		responses[i] = *ToListingResponse(listing)
	}
	return &ListingListResponse{Data: responses}
}
