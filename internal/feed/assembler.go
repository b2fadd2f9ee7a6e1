package feed

import (
	"sort"
	"time"

	"blog-webclient/internal/gateway"

	"github.com/samber/lo"
)

// Author is the public slice of a user record. Password and email never leave
// the gateway layer. A post whose authorId resolves to nobody keeps the zero
// Author and rendering falls back to "Unknown".
type Author struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type CommentView struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	User      Author `json:"user"`
}

type PostView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Image     string        `json:"image,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
	Author    Author        `json:"author"`
	Comments  []CommentView `json:"comments"`
	Likes     int           `json:"likes"`
	Liked     bool          `json:"liked"`
	CanModify bool          `json:"canModify"`
}

// Assemble joins independently fetched collections into the render-ready feed:
// posts sorted by createdAt descending (input order kept for equal timestamps),
// authors and comment authors resolved by id, comments partitioned by postId,
// like count and the viewer's liked flag per post. Pure and idempotent.
func Assemble(snap gateway.Snapshot, likes []gateway.Like, viewerID string) []PostView {
	authors := lo.KeyBy(snap.Users, func(u gateway.User) string { return u.ID })
	commentsByPost := lo.GroupBy(snap.Comments, func(c gateway.Comment) string { return c.PostID })
	likesByPost := lo.GroupBy(likes, func(l gateway.Like) string { return l.PostID })

	views := make([]PostView, 0, len(snap.Posts))
	for _, post := range snap.Posts {
		postLikes := likesByPost[post.ID]

		views = append(views, PostView{
			ID:        post.ID,
			Title:     post.Title,
			Body:      post.Body,
			Image:     post.Image,
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
			Author:    authorView(authors, post.AuthorID),
			Comments:  commentViews(commentsByPost[post.ID], authors),
			Likes:     len(postLikes),
			Liked: viewerID != "" && lo.SomeBy(postLikes, func(l gateway.Like) bool {
				return l.UserID == viewerID
			}),
			CanModify: viewerID != "" && viewerID == post.AuthorID,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return parseWhen(views[i].CreatedAt).After(parseWhen(views[j].CreatedAt))
	})
	return views
}

func authorView(users map[string]gateway.User, id string) Author {
	user, ok := users[id]
	if !ok {
		return Author{}
	}
	return Author{ID: user.ID, Username: user.Username, Avatar: user.Avatar}
}

func commentViews(comments []gateway.Comment, users map[string]gateway.User) []CommentView {
	return lo.Map(comments, func(c gateway.Comment, _ int) CommentView {
		return CommentView{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			User:      authorView(users, c.UserID),
		}
	})
}

// parseWhen accepts the backend's RFC3339 timestamps and bare dates.
// Unparseable values sort last.
func parseWhen(s string) time.Time {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	return time.Time{}
}
