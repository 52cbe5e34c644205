package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/carhub/carhub/internal/model"
	"github.com/carhub/carhub/internal/repository"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// fakeListingStore is an in-memory ListingStore preserving insert order.
type fakeListingStore struct {
	mu       sync.Mutex
	listings []*model.Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{}
}

func (f *fakeListingStore) CreateListing(_ context.Context, listing *model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := cloneListing(listing)
	f.listings = append(f.listings, clone)
	return nil
}

func (f *fakeListingStore) ListListingsByOwner(_ context.Context, ownerID string) ([]*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Listing, 0)
	for _, l := range f.listings {
		if l.OwnerID == ownerID {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (f *fakeListingStore) ListAllListings(_ context.Context) ([]*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Listing, 0)
	for _, l := range f.listings {
		out = append(out, cloneListing(l))
	}
	return out, nil
}

func (f *fakeListingStore) SearchListings(_ context.Context, ownerID, keyword string) ([]*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Listing, 0)
	for _, l := range f.listings {
		if l.OwnerID == ownerID && l.Matches(keyword) {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (f *fakeListingStore) GetListing(_ context.Context, id, ownerID string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ID == id && l.OwnerID == ownerID {
			return cloneListing(l), nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (f *fakeListingStore) UpdateListing(_ context.Context, id, ownerID string, update model.ListingUpdate) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ID != id || l.OwnerID != ownerID {
			continue
		}
		if update.Title != nil {
			l.Title = *update.Title
		}
		if update.Description != nil {
			l.Description = *update.Description
		}
		if update.Price != nil {
			l.Price = *update.Price
		}
		if update.Tags != nil {
			l.Tags = *update.Tags
		}
		if update.Images != nil {
			l.Images = *update.Images
		}
		return cloneListing(l), nil
	}
	return nil, repository.ErrListingNotFound
}

func (f *fakeListingStore) DeleteListing(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.listings {
		if l.ID == id && l.OwnerID == ownerID {
			f.listings = append(f.listings[:i], f.listings[i+1:]...)
			return nil
		}
	}
	return repository.ErrListingNotFound
}

func (f *fakeListingStore) RemoveListingImage(_ context.Context, id, ownerID, imageURL string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ID != id || l.OwnerID != ownerID {
			continue
		}
		images := make([]string, 0, len(l.Images))
		for _, img := range l.Images {
			if img != imageURL {
				images = append(images, img)
			}
		}
		l.Images = images
		return cloneListing(l), nil
	}
	return nil, repository.ErrListingNotFound
}

func (f *fakeListingStore) AppendListingImages(_ context.Context, id string, imageURLs []string) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ID != id {
			continue
		}
		l.Images = append(l.Images, imageURLs...)
		return cloneListing(l), nil
	}
	return nil, repository.ErrListingNotFound
}

func cloneListing(l *model.Listing) *model.Listing {
	clone := *l
	clone.Tags = append([]string(nil), l.Tags...)
	clone.Images = append([]string(nil), l.Images...)
	return &clone
}

// fakeImageStore records uploads and deletes without any network calls.
type fakeImageStore struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{}
}

func (f *fakeImageStore) Upload(_ context.Context, filename, _ string, data io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if data != nil {
		_, _ = io.Copy(io.Discard, data)
	}
	f.uploads++
	return fmt.Sprintf("https://img.test/car-images/cars/%04d-%s", f.uploads, filename), nil
}

func (f *fakeImageStore) Delete(_ context.Context, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, imageURL)
	return nil
}

var errUploadFailed = errors.New("upload failed")
