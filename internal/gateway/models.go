package gateway

// Resource shapes mirror the remote collections; the client never stores them
// durably, every copy is rebuilt from a fetch.

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Image     string `json:"image,omitempty"`
	AuthorID  string `json:"authorId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PostPatch is the partial update sent on edit. Zero fields are omitted so the
// backend keeps its current values.
type PostPatch struct {
	Title     string `json:"title,omitempty"`
	Body      string `json:"body,omitempty"`
	Image     string `json:"image,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

type Like struct {
	ID     string `json:"id"`
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

// Snapshot is the result of the startup fan-out fetch.
type Snapshot struct {
	Posts    []Post
	Users    []User
	Comments []Comment
}
