package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carhub/carhub/internal/model"
)

// ErrListingNotFound covers both a missing listing and an ownership
// mismatch, so callers cannot distinguish the two.
var ErrListingNotFound = errors.New("listing not found")

// CreateListing inserts a new listing document.
func (r *Repository) CreateListing(ctx context.Context, listing *model.Listing) error {
	if _, err := r.listings.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// ListListingsByOwner returns all listings owned by the given account,
// in storage order.
func (r *Repository) ListListingsByOwner(ctx context.Context, ownerID string) ([]*model.Listing, error) {
	return r.findListings(ctx, bson.M{"owner_id": ownerID})
}

// ListAllListings returns every listing regardless of owner.
func (r *Repository) ListAllListings(ctx context.Context) ([]*model.Listing, error) {
	return r.findListings(ctx, bson.M{})
}

// SearchListings returns owner-scoped listings whose title, description,
// or any tag contains keyword case-insensitively.
func (r *Repository) SearchListings(ctx context.Context, ownerID, keyword string) ([]*model.Listing, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	filter := bson.M{
		"owner_id": ownerID,
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		},
	}
	return r.findListings(ctx, filter)
}

// GetListing retrieves a single listing owned by the given account.
func (r *Repository) GetListing(ctx context.Context, id, ownerID string) (*model.Listing, error) {
	var listing model.Listing
	err := r.listings.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// UpdateListing overwrites the supplied fields of an owned listing and
// returns the updated document.
func (r *Repository) UpdateListing(ctx context.Context, id, ownerID string, update model.ListingUpdate) (*model.Listing, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}
	if update.Images != nil {
		set["images"] = *update.Images
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var listing model.Listing
	err := r.listings.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set},
		opts,
	).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return &listing, nil
}

// DeleteListing removes an owned listing permanently.
func (r *Repository) DeleteListing(ctx context.Context, id, ownerID string) error {
	res, err := r.listings.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrListingNotFound
	}
	return nil
}

// RemoveListingImage pulls a single image URL from an owned listing and
// returns the updated document.
func (r *Repository) RemoveListingImage(ctx context.Context, id, ownerID, imageURL string) (*model.Listing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var listing model.Listing
	err := r.listings.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{
			"$pull": bson.M{"images": imageURL},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		opts,
	).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to remove listing image: %w", err)
	}
	return &listing, nil
}

// AppendListingImages pushes image URLs onto a listing's image list and
// returns the updated document. The lookup is by ID alone, without an
// owner filter, and no image cap applies on this path.
func (r *Repository) AppendListingImages(ctx context.Context, id string, imageURLs []string) (*model.Listing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var listing model.Listing
	err := r.listings.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": imageURLs}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		opts,
	).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to append listing images: %w", err)
	}
	return &listing, nil
}

func (r *Repository) findListings(ctx context.Context, filter bson.M) ([]*model.Listing, error) {
	cursor, err := r.listings.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]*model.Listing, 0)
	for cursor.Next(ctx) {
		var listing model.Listing
		if err := cursor.Decode(&listing); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, &listing)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return listings, nil
}
