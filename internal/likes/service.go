package likes

import (
	"context"
	"errors"
	"sync"

	"blog-webclient/internal/gateway"
)

var ErrNotLoggedIn = errors.New("You must be logged in to like")

type Gateway interface {
	ListLikes(ctx context.Context, postID, userID string) ([]gateway.Like, error)
	CreateLike(ctx context.Context, like gateway.Like) (gateway.Like, error)
	DeleteLike(ctx context.Context, id string) error
}

type Service struct {
	gw    Gateway
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw, locks: map[string]*sync.Mutex{}}
}

// Toggle flips the viewer's like on a post and returns the new state plus the
// resulting count. The remote store has no unique constraint on
// (postId, userId), so the existence check and the mutation are serialized per
// pair here; rapid double toggles within this process cannot create duplicate
// rows or delete the same row twice.
func (s *Service) Toggle(ctx context.Context, postID, userID string) (bool, int, error) {
	if userID == "" {
		return false, 0, ErrNotLoggedIn
	}

	lock := s.lockFor(postID + ":" + userID)
	lock.Lock()
	defer lock.Unlock()

	postLikes, err := s.gw.ListLikes(ctx, postID, "")
	if err != nil {
		return false, 0, err
	}

	var mine *gateway.Like
	for i := range postLikes {
		if postLikes[i].UserID == userID {
			mine = &postLikes[i]
			break
		}
	}

	if mine != nil {
		if err := s.gw.DeleteLike(ctx, mine.ID); err != nil {
			return false, 0, err
		}
		return false, len(postLikes) - 1, nil
	}

	if _, err := s.gw.CreateLike(ctx, gateway.Like{PostID: postID, UserID: userID}); err != nil {
		return false, 0, err
	}
	return true, len(postLikes) + 1, nil
}

func (s *Service) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
