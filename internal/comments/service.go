package comments

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog-webclient/internal/feed"
	"blog-webclient/internal/gateway"
)

var (
	ErrEmptyBody   = errors.New("comment text required")
	ErrNotLoggedIn = errors.New("You must be logged in to comment")
)

type Gateway interface {
	CreateComment(ctx context.Context, comment gateway.Comment) (gateway.Comment, error)
}

type Service struct {
	gw Gateway
}

var now = time.Now

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Add validates locally, posts the comment with a client-generated timestamp
// and returns the server record with the viewer attached as its author. This
// is an optimistic append: no re-fetch confirms the write.
func (s *Service) Add(ctx context.Context, viewer gateway.User, postID, body string) (feed.CommentView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return feed.CommentView{}, ErrEmptyBody
	}
	if viewer.ID == "" {
		return feed.CommentView{}, ErrNotLoggedIn
	}

	created, err := s.gw.CreateComment(ctx, gateway.Comment{
		PostID:    postID,
		UserID:    viewer.ID,
		Body:      body,
		CreatedAt: now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return feed.CommentView{}, err
	}

	return feed.CommentView{
		ID:        created.ID,
		Body:      created.Body,
		CreatedAt: created.CreatedAt,
		User: feed.Author{
			ID:       viewer.ID,
			Username: viewer.Username,
			Avatar:   viewer.Avatar,
		},
	}, nil
}
