package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"blog-webclient/internal/gateway"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	CookieName   = "blog_session"
	DefaultTheme = "light"
)

var ErrStoreUnavailable = errors.New("session store unavailable")

// Store keeps the logged-in user as a serialized copy in durable storage.
// There is no expiry and no server-side validation on later requests: the
// session is just a cached user record, alive from login to explicit logout.
type Store struct {
	redis  *redis.Client
	secret []byte
}

func NewStore(redisClient *redis.Client, secret string) *Store {
	return &Store{redis: redisClient, secret: []byte(secret)}
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Login stores the user under a fresh session id and returns the signed token
// the browser carries in its cookie.
func (s *Store) Login(ctx context.Context, user gateway.User) (string, error) {
	if s.redis == nil {
		return "", ErrStoreUnavailable
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	sid := uuid.NewString()
	if err := s.redis.Set(ctx, sessionKey(sid), data, 0).Err(); err != nil {
		return "", err
	}
	return s.sign(sid)
}

// Current hydrates the user for a token. Any failure leaves the caller logged
// out rather than erroring; a corrupt stored record is deleted on sight.
func (s *Store) Current(ctx context.Context, token string) (gateway.User, string, bool) {
	sid, err := s.parse(token)
	if err != nil || s.redis == nil {
		return gateway.User{}, "", false
	}

	data, err := s.redis.Get(ctx, sessionKey(sid)).Bytes()
	if err != nil {
		return gateway.User{}, "", false
	}

	var user gateway.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("clearing corrupt session entry: %v", err)
		_ = s.redis.Del(ctx, sessionKey(sid)).Err()
		return gateway.User{}, "", false
	}
	return user, sid, true
}

// Logout tears the session down. The teardown is scoped to this session's own
// keys; nothing else in the store is touched.
func (s *Store) Logout(ctx context.Context, token string) error {
	sid, err := s.parse(token)
	if err != nil || s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, sessionKey(sid), themeKey(sid)).Err()
}

func (s *Store) Theme(ctx context.Context, sid string) string {
	if s.redis == nil || sid == "" {
		return DefaultTheme
	}
	theme, err := s.redis.Get(ctx, themeKey(sid)).Result()
	if err != nil || theme == "" {
		return DefaultTheme
	}
	return theme
}

func (s *Store) SetTheme(ctx context.Context, sid, theme string) error {
	if s.redis == nil {
		return ErrStoreUnavailable
	}
	if sid == "" {
		return errors.New("no active session")
	}
	return s.redis.Set(ctx, themeKey(sid), theme, 0).Err()
}

func (s *Store) sign(sid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{SessionID: sid})
	return token.SignedString(s.secret)
}

func (s *Store) parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.SessionID == "" {
		return "", errors.New("session token invalid")
	}
	return c.SessionID, nil
}

func sessionKey(sid string) string { return "session:" + sid }
func themeKey(sid string) string   { return "theme:" + sid }
