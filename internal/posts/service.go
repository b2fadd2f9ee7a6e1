package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-webclient/internal/gateway"
	"blog-webclient/internal/uploads"
)

var (
	ErrNotLoggedIn   = errors.New("You must be logged in to edit a post")
	ErrMissingFields = errors.New("title and body required")
	ErrNotConfirmed  = errors.New("deletion requires confirmation")
	ErrNoUploader    = errors.New("upload service unavailable")
)

type Gateway interface {
	GetPost(ctx context.Context, id string) (gateway.Post, error)
	CreatePost(ctx context.Context, post gateway.Post) (gateway.Post, error)
	UpdatePost(ctx context.Context, id string, patch gateway.PostPatch) (gateway.Post, error)
	DeletePost(ctx context.Context, id string) error
}

type Uploader interface {
	Upload(ctx context.Context, bucket string, file uploads.File) (string, error)
}

type Service struct {
	gw       Gateway
	uploader Uploader
	bucket   string
}

var now = time.Now

func NewService(gw Gateway, uploader Uploader, bucket string) *Service {
	return &Service{gw: gw, uploader: uploader, bucket: bucket}
}

// Create uploads the selected image first; an upload failure aborts the whole
// creation. The caller reconciles by reloading the list, not by patching it.
func (s *Service) Create(ctx context.Context, viewer gateway.User, title, body string, image *uploads.File) (gateway.Post, error) {
	if viewer.ID == "" {
		return gateway.Post{}, ErrNotLoggedIn
	}
	if title == "" || body == "" {
		return gateway.Post{}, ErrMissingFields
	}

	imageURL, err := s.uploadImage(ctx, image)
	if err != nil {
		return gateway.Post{}, err
	}

	return s.gw.CreatePost(ctx, gateway.Post{
		Title:     title,
		Body:      body,
		Image:     imageURL,
		AuthorID:  viewer.ID,
		CreatedAt: now().UTC().Format(time.RFC3339),
	})
}

// Seed fetches the existing post to pre-fill the edit form.
func (s *Service) Seed(ctx context.Context, id string) (gateway.Post, error) {
	return s.gw.GetPost(ctx, id)
}

// Update sends a partial patch; only the replacement image, when one was
// selected, touches the stored image URL.
func (s *Service) Update(ctx context.Context, viewer gateway.User, id, title, body string, image *uploads.File) (gateway.Post, error) {
	if viewer.ID == "" {
		return gateway.Post{}, ErrNotLoggedIn
	}

	patch := gateway.PostPatch{
		Title:     title,
		Body:      body,
		UpdatedAt: now().UTC().Format(time.RFC3339),
	}

	imageURL, err := s.uploadImage(ctx, image)
	if err != nil {
		return gateway.Post{}, err
	}
	patch.Image = imageURL

	return s.gw.UpdatePost(ctx, id, patch)
}

// Delete issues exactly one delete call, and only after explicit confirmation.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return s.gw.DeletePost(ctx, id)
}

func (s *Service) uploadImage(ctx context.Context, image *uploads.File) (string, error) {
	if image == nil {
		return "", nil
	}
	if s.uploader == nil {
		return "", ErrNoUploader
	}
	url, err := s.uploader.Upload(ctx, s.bucket, *image)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	return url, nil
}
