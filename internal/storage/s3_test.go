package storage

import (
	"strings"
	"testing"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard object url",
			url:  "https://images.example.com/car-images/cars/01J0ABCDEF.jpg",
			want: "cars/01J0ABCDEF.jpg",
		},
		{
			name: "path style minio url",
			url:  "http://localhost:9000/car-images/cars/01J0ABCDEF.png",
			want: "cars/01J0ABCDEF.png",
		},
		{
			name: "no extension",
			url:  "https://images.example.com/cars/01J0ABCDEF",
			want: "cars/01J0ABCDEF",
		},
		{
			name:    "empty path",
			url:     "https://images.example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFromURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got key %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("KeyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNewObjectKey(t *testing.T) {
	key := newObjectKey("photo.JPG")

	if !strings.HasPrefix(key, "cars/") {
		t.Errorf("expected cars/ prefix, got %s", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("expected lowercased .jpg suffix, got %s", key)
	}

	// Keys must be unique even for identical filenames
	if other := newObjectKey("photo.JPG"); other == key {
		t.Errorf("expected unique keys, got %s twice", key)
	}
}
