package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

// ErrBackend wraps every remote failure. Callers do not classify further: any
// failed call surfaces as one generic notification and the action is dropped.
var ErrBackend = errors.New("backend request failed")

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{http: client}
}

func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.http.R().WithContext(ctx)
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if res.IsError() {
		return fmt.Errorf("%w: %s %s: %s", ErrBackend, res.Request.Method, res.Request.URL, res.Status())
	}
	return nil
}

// FetchAll is the startup load: posts, users and comments fetched in parallel.
// Any single failure fails the combined load, there is no partial success.
func (c *Client) FetchAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Posts, err = c.ListPosts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Users, err = c.ListUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Comments, err = c.ListComments(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	res, err := c.r(ctx).SetResult(&posts).Get("/posts")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	var post Post
	res, err := c.r(ctx).SetResult(&post).Get("/posts/" + id)
	if err := check(res, err); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (c *Client) CreatePost(ctx context.Context, post Post) (Post, error) {
	var created Post
	res, err := c.r(ctx).SetBody(post).SetResult(&created).Post("/posts")
	if err := check(res, err); err != nil {
		return Post{}, err
	}
	return created, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, patch PostPatch) (Post, error) {
	var updated Post
	res, err := c.r(ctx).SetBody(patch).SetResult(&updated).Patch("/posts/" + id)
	if err := check(res, err); err != nil {
		return Post{}, err
	}
	return updated, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	res, err := c.r(ctx).Delete("/posts/" + id)
	return check(res, err)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	res, err := c.r(ctx).SetResult(&users).Get("/users")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUsers is the login filtered read: zero or one record is expected, the
// backend compares both fields by plain equality.
func (c *Client) FindUsers(ctx context.Context, email, password string) ([]User, error) {
	var users []User
	res, err := c.r(ctx).
		SetQueryParam("email", email).
		SetQueryParam("password", password).
		SetResult(&users).
		Get("/users")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUsersByEmail backs the duplicate-email pre-check on registration. The
// check and the insert are not atomic, so a concurrent registration can still
// slip through.
func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]User, error) {
	var users []User
	res, err := c.r(ctx).
		SetQueryParam("email", email).
		SetResult(&users).
		Get("/users")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, user User) (User, error) {
	var created User
	res, err := c.r(ctx).SetBody(user).SetResult(&created).Post("/users")
	if err := check(res, err); err != nil {
		return User{}, err
	}
	return created, nil
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	var comments []Comment
	req := c.r(ctx).SetResult(&comments)
	if postID != "" {
		req.SetQueryParam("postId", postID)
	}
	res, err := req.Get("/comments")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, comment Comment) (Comment, error) {
	var created Comment
	res, err := c.r(ctx).SetBody(comment).SetResult(&created).Post("/comments")
	if err := check(res, err); err != nil {
		return Comment{}, err
	}
	return created, nil
}

func (c *Client) ListLikes(ctx context.Context, postID, userID string) ([]Like, error) {
	var likes []Like
	req := c.r(ctx).SetResult(&likes)
	if postID != "" {
		req.SetQueryParam("postId", postID)
	}
	if userID != "" {
		req.SetQueryParam("userId", userID)
	}
	res, err := req.Get("/likes")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return likes, nil
}

func (c *Client) CreateLike(ctx context.Context, like Like) (Like, error) {
	var created Like
	res, err := c.r(ctx).SetBody(like).SetResult(&created).Post("/likes")
	if err := check(res, err); err != nil {
		return Like{}, err
	}
	return created, nil
}

func (c *Client) DeleteLike(ctx context.Context, id string) error {
	res, err := c.r(ctx).Delete("/likes/" + id)
	return check(res, err)
}
