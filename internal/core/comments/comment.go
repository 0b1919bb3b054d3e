package comments

import (
	"crypto/rand"
	"time"
)

// Comment is a single node in a thread. A root comment and every nested
// reply share this shape; replies embed recursively, so a whole thread
// persists as one document in the comments index.
type Comment struct {
	// ID is the store-assigned document id. Only root comments carry one;
	// nested replies are addressed through the root document.
	ID string `json:"id,omitempty"`

	// CommentID is a server-synthesized random token present on every node,
	// including nested replies.
	CommentID string `json:"comment_id"`

	PostID          string     `json:"post_id"`
	Author          Author     `json:"author"`
	Content         string     `json:"content"`
	UserHostAddress string     `json:"user_host_address"`
	UserAgent       string     `json:"user_agent"`
	Spam            bool       `json:"spam"`
	Approved        bool       `json:"approved"`
	PublishedAt     time.Time  `json:"published_at"`
	Replies         []*Comment `json:"replies"`
}

// Author identifies who wrote a comment
type Author struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`
}

// Thread pairs a root comment with its store identity and the concurrency
// tokens needed for a guarded whole-document replace.
type Thread struct {
	ID          string
	Root        *Comment
	SeqNo       *int64
	PrimaryTerm *int64
}

// Clone returns a deep copy of the comment and its entire reply subtree.
// Used to snapshot a reply target before mutating the tree, and to keep
// read paths free of aliasing into stored documents.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Replies != nil {
		clone.Replies = make([]*Comment, len(c.Replies))
		for i, reply := range c.Replies {
			clone.Replies[i] = reply.Clone()
		}
	}
	return &clone
}

const (
	commentIDLength   = 12
	commentIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// newCommentID returns a random 12-character alphanumeric token
func newCommentID() string {
	buf := make([]byte, commentIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = commentIDAlphabet[int(b)%len(commentIDAlphabet)]
	}
	return string(buf)
}
