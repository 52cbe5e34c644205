package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/carhub/carhub/internal/metrics"
	"github.com/carhub/carhub/internal/model"
	"github.com/carhub/carhub/internal/repository"
)

// Listing service errors.
var (
	// ErrListingNotFound covers both absence and ownership mismatch.
	ErrListingNotFound = errors.New("listing not found")
	// ErrTooManyImages rejects operations that would exceed the image cap.
	ErrTooManyImages = errors.New("cannot add more than 10 images")
	// ErrNoImages rejects an upload request with no files attached.
	ErrNoImages = errors.New("no files uploaded")
)

// ListingStore is the listing persistence needed by the listing service.
type ListingStore interface {
	CreateListing(ctx context.Context, listing *model.Listing) error
	ListListingsByOwner(ctx context.Context, ownerID string) ([]*model.Listing, error)
	ListAllListings(ctx context.Context) ([]*model.Listing, error)
	SearchListings(ctx context.Context, ownerID, keyword string) ([]*model.Listing, error)
	GetListing(ctx context.Context, id, ownerID string) (*model.Listing, error)
	UpdateListing(ctx context.Context, id, ownerID string, update model.ListingUpdate) (*model.Listing, error)
	DeleteListing(ctx context.Context, id, ownerID string) error
	RemoveListingImage(ctx context.Context, id, ownerID, imageURL string) (*model.Listing, error)
	AppendListingImages(ctx context.Context, id string, imageURLs []string) (*model.Listing, error)
}

// ImageStore is the remote image host needed by the listing service.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// ImageUpload is one image file submitted with a request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// ListingService performs owner-scoped CRUD and search over listings.
type ListingService struct {
	store   ListingStore
	images  ImageStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewListingService creates a new ListingService.
func NewListingService(store ListingStore, images ImageStore, logger *slog.Logger, recorder metrics.Recorder) *ListingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ListingService{
		store:   store,
		images:  images,
		logger:  logger,
		metrics: recorder,
	}
}

// CreateListingInput defines input for creating a listing.
type CreateListingInput struct {
	OwnerID     string
	Title       string
	Description string
	Price       float64
	Tags        []string
	Images      []ImageUpload
}

// Create uploads the submitted images, then persists a new listing
// owned by the caller. Image objects created before a failure are not
// rolled back.
func (s *ListingService) Create(ctx context.Context, input CreateListingInput) (*model.Listing, error) {
	if input.Title == "" || input.Description == "" {
		return nil, ErrMissingFields
	}

	imageURLs, err := s.uploadAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	// The cap is checked after uploading, so rejected requests leave
	// orphaned remote objects behind. Accepted behavior; no compensation.
	if len(imageURLs) > model.MaxListingImages {
		return nil, ErrTooManyImages
	}

	now := time.Now().UTC()
	listing := &model.Listing{
		ID:          newID(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Tags:        normalizeTags(input.Tags),
		Images:      imageURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.metrics.IncListingCreated()

	return listing, nil
}

// ListOwned returns all listings owned by the caller.
func (s *ListingService) ListOwned(ctx context.Context, ownerID string) ([]*model.Listing, error) {
	return s.store.ListListingsByOwner(ctx, ownerID)
}

// ListAll returns every listing in the system regardless of owner.
func (s *ListingService) ListAll(ctx context.Context) ([]*model.Listing, error) {
	return s.store.ListAllListings(ctx)
}

// Search returns caller-owned listings whose title, description, or any
// tag contains keyword case-insensitively.
func (s *ListingService) Search(ctx context.Context, ownerID, keyword string) ([]*model.Listing, error) {
	return s.store.SearchListings(ctx, ownerID, keyword)
}

// Get returns a single caller-owned listing.
func (s *ListingService) Get(ctx context.Context, ownerID, id string) (*model.Listing, error) {
	listing, err := s.store.GetListing(ctx, id, ownerID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return listing, nil
}

// Update overwrites the supplied fields of a caller-owned listing.
func (s *ListingService) Update(ctx context.Context, ownerID, id string, update model.ListingUpdate) (*model.Listing, error) {
	if update.Images != nil && len(*update.Images) > model.MaxListingImages {
		return nil, ErrTooManyImages
	}
	if update.Tags != nil {
		tags := normalizeTags(*update.Tags)
		update.Tags = &tags
	}

	listing, err := s.store.UpdateListing(ctx, id, ownerID, update)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.metrics.IncListingUpdated()

	return listing, nil
}

// Delete removes a caller-owned listing permanently, then best-effort
// deletes its remote image objects.
func (s *ListingService) Delete(ctx context.Context, ownerID, id string) error {
	listing, err := s.store.GetListing(ctx, id, ownerID)
	if err != nil {
		return mapStoreErr(err)
	}

	if err := s.store.DeleteListing(ctx, id, ownerID); err != nil {
		return mapStoreErr(err)
	}

	s.metrics.IncListingDeleted()

	for _, imageURL := range listing.Images {
		if err := s.images.Delete(ctx, imageURL); err != nil {
			s.logger.Warn("failed to delete remote image",
				"listing_id", id,
				"image_url", imageURL,
				"error", err,
			)
			continue
		}
		s.metrics.IncImageDeleted()
	}

	return nil
}

// DeleteImage removes one image URL from a caller-owned listing, then
// best-effort deletes the remote object.
func (s *ListingService) DeleteImage(ctx context.Context, ownerID, id, imageURL string) (*model.Listing, error) {
	listing, err := s.store.RemoveListingImage(ctx, id, ownerID, imageURL)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if err := s.images.Delete(ctx, imageURL); err != nil {
		s.logger.Warn("failed to delete remote image",
			"listing_id", id,
			"image_url", imageURL,
			"error", err,
		)
	} else {
		s.metrics.IncImageDeleted()
	}

	return listing, nil
}

// UploadImages uploads the submitted files and appends the resulting
// URLs to the listing's image list. The listing is addressed by ID
// without an owner filter, and the image cap is not enforced here.
func (s *ListingService) UploadImages(ctx context.Context, id string, images []ImageUpload) (*model.Listing, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	imageURLs, err := s.uploadAll(ctx, images)
	if err != nil {
		return nil, err
	}

	listing, err := s.store.AppendListingImages(ctx, id, imageURLs)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return listing, nil
}

// uploadAll sends each file to the image host in order, collecting the
// resulting public URLs.
func (s *ListingService) uploadAll(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		u, err := s.images.Upload(ctx, img.Filename, img.ContentType, img.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %q: %w", img.Filename, err)
		}
		s.metrics.IncImageUploaded()
		urls = append(urls, u)
	}
	return urls, nil
}

// normalizeTags drops empty tags while preserving order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrListingNotFound) {
		return ErrListingNotFound
	}
	return err
}
