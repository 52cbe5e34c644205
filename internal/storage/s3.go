// Package storage provides the remote image host, backed by
// S3-compatible object storage (AWS S3 or MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
)

// imageFolder is the key prefix for all listing images.
const imageFolder = "cars"

// ErrInvalidImageURL indicates the URL does not reference a stored image.
var ErrInvalidImageURL = errors.New("invalid image URL")

// Options configures the image store.
type Options struct {
	// Endpoint overrides the S3 endpoint (set for MinIO). Empty uses AWS.
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL is the base under which uploaded objects are
	// publicly reachable. Defaults to "<endpoint>/<bucket>".
	PublicBaseURL string
}

// ImageStore uploads and deletes listing images in object storage.
type ImageStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// New builds an ImageStore from static credentials.
func New(ctx context.Context, opts Options) (*ImageStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// MinIO serves buckets under the path, not a subdomain.
			o.UsePathStyle = true
		}
	})

	publicBaseURL := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if publicBaseURL == "" {
		publicBaseURL = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
	}

	return &ImageStore{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

// Upload stores one image object and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	key := newObjectKey(filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   data,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object referenced by a previously returned URL.
// The object key is derived from the URL's last path segment.
func (s *ImageStore) Delete(ctx context.Context, imageURL string) error {
	key, err := KeyFromURL(imageURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// KeyFromURL derives the object key from an image URL. The last path
// segment identifies the object under the image folder.
func KeyFromURL(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", ErrInvalidImageURL
	}

	segment := path.Base(parsed.Path)
	if segment == "" || segment == "." || segment == "/" {
		return "", ErrInvalidImageURL
	}

	return imageFolder + "/" + segment, nil
}

// newObjectKey builds a unique key preserving the original extension.
func newObjectKey(filename string) string {
	return imageFolder + "/" + ulid.Make().String() + strings.ToLower(path.Ext(filename))
}
