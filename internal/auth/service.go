package auth

import (
	"context"
	"errors"
	"fmt"

	"blog-webclient/internal/gateway"
	"blog-webclient/internal/session"
	"blog-webclient/internal/uploads"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrMissingFields      = errors.New("username, email, password required")
	ErrNoUploader         = errors.New("upload service unavailable")
)

type Gateway interface {
	FindUsers(ctx context.Context, email, password string) ([]gateway.User, error)
	FindUsersByEmail(ctx context.Context, email string) ([]gateway.User, error)
	CreateUser(ctx context.Context, user gateway.User) (gateway.User, error)
}

type Uploader interface {
	Upload(ctx context.Context, bucket string, file uploads.File) (string, error)
}

type Service struct {
	gw           Gateway
	sessions     *session.Store
	uploader     Uploader
	avatarBucket string
}

func NewService(gw Gateway, sessions *session.Store, uploader Uploader, avatarBucket string) *Service {
	return &Service{gw: gw, sessions: sessions, uploader: uploader, avatarBucket: avatarBucket}
}

// Login is a filtered read against the users collection: the backend matches
// email and password by plain equality and returns zero or one record.
func (s *Service) Login(ctx context.Context, email, password string) (gateway.User, string, error) {
	if email == "" || password == "" {
		return gateway.User{}, "", errors.New("email and password required")
	}

	matches, err := s.gw.FindUsers(ctx, email, password)
	if err != nil {
		return gateway.User{}, "", err
	}
	if len(matches) == 0 {
		return gateway.User{}, "", ErrInvalidCredentials
	}

	user := matches[0]
	token, err := s.sessions.Login(ctx, user)
	if err != nil {
		return gateway.User{}, "", err
	}
	return user, token, nil
}

type RegisterRequest struct {
	Username string
	Email    string
	Password string
	Avatar   *uploads.File
}

// Register uploads the avatar first (failure aborts), then pre-checks the
// email before creating the user. The pre-check and the create are not
// atomic: a concurrent registration for the same email can still win.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (gateway.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return gateway.User{}, ErrMissingFields
	}

	avatarURL := ""
	if req.Avatar != nil {
		if s.uploader == nil {
			return gateway.User{}, ErrNoUploader
		}
		url, err := s.uploader.Upload(ctx, s.avatarBucket, *req.Avatar)
		if err != nil {
			return gateway.User{}, fmt.Errorf("avatar upload failed: %w", err)
		}
		avatarURL = url
	}

	existing, err := s.gw.FindUsersByEmail(ctx, req.Email)
	if err != nil {
		return gateway.User{}, err
	}
	if len(existing) > 0 {
		return gateway.User{}, ErrEmailTaken
	}

	return s.gw.CreateUser(ctx, gateway.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   avatarURL,
	})
}
