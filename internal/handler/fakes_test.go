package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/carhub/carhub/internal/model"
	"github.com/carhub/carhub/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubUserStore keeps accounts in a map keyed by email.
type stubUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*model.User)}
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	u := *user
	s.users[user.Email] = &u
	return nil
}

func (s *stubUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// stubListingStore keeps listings in insertion order.
type stubListingStore struct {
	mu       sync.Mutex
	listings []*model.Listing
}

func newStubListingStore() *stubListingStore {
	return &stubListingStore{}
}

func (s *stubListingStore) add(listing *model.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := cloneListing(listing)
	s.listings = append(s.listings, l)
}

func cloneListing(l *model.Listing) *model.Listing {
	c := *l
	c.Tags = append([]string(nil), l.Tags...)
	c.Images = append([]string(nil), l.Images...)
	return &c
}

func (s *stubListingStore) CreateListing(ctx context.Context, listing *model.Listing) error {
	s.add(listing)
	return nil
}

func (s *stubListingStore) ListListingsByOwner(ctx context.Context, ownerID string) ([]*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Listing
	for _, l := range s.listings {
		if l.OwnedBy(ownerID) {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (s *stubListingStore) ListAllListings(ctx context.Context) ([]*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Listing
	for _, l := range s.listings {
		out = append(out, cloneListing(l))
	}
	return out, nil
}

func (s *stubListingStore) SearchListings(ctx context.Context, ownerID, keyword string) ([]*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Listing
	for _, l := range s.listings {
		if l.OwnedBy(ownerID) && l.Matches(keyword) {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (s *stubListingStore) GetListing(ctx context.Context, id, ownerID string) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id && l.OwnedBy(ownerID) {
			return cloneListing(l), nil
		}
	}
	return nil, repository.ErrListingNotFound
}

func (s *stubListingStore) UpdateListing(ctx context.Context, id, ownerID string, update model.ListingUpdate) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID != id || !l.OwnedBy(ownerID) {
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
			l.Tags = append([]string(nil), *update.Tags...)
		}
		if update.Images != nil {
			l.Images = append([]string(nil), *update.Images...)
		}
		return cloneListing(l), nil
	}
	return nil, repository.ErrListingNotFound
}

func (s *stubListingStore) DeleteListing(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listings {
		if l.ID == id && l.OwnedBy(ownerID) {
			s.listings = append(s.listings[:i], s.listings[i+1:]...)
			return nil
		}
	}
	return repository.ErrListingNotFound
}

func (s *stubListingStore) RemoveListingImage(ctx context.Context, id, ownerID, imageURL string) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID != id || !l.OwnedBy(ownerID) {
			continue
		}
		images := l.Images[:0]
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

func (s *stubListingStore) AppendListingImages(ctx context.Context, id string, imageURLs []string) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id {
			l.Images = append(l.Images, imageURLs...)
			return cloneListing(l), nil
		}
	}
	return nil, repository.ErrListingNotFound
}

// stubImageHost fabricates public URLs and tracks deletions.
type stubImageHost struct {
	mu       sync.Mutex
	uploaded int
	deleted  []string
}

func (s *stubImageHost) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded++
	return fmt.Sprintf("https://img.test/car-images/cars/%04d-%s", s.uploaded, filename), nil
}

func (s *stubImageHost) Delete(ctx context.Context, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, imageURL)
	return nil
}
