package post

import (
	"time"
	"bhasaconnect/internal/core/user"
)

// Post مدل کانونی پست؛ Author یک snapshot است نه ارجاع زنده
type Post struct {
	ID            string    `json:"id"`
	Author        user.User `json:"author"`
	Content       string    `json:"content"`
	Language      string    `json:"language,omitempty"`
	MediaURL      string    `json:"media_url,omitempty"`
	MediaType     string    `json:"media_type,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	LikesCount    int       `json:"likes_count"`
	IsLiked       bool      `json:"is_liked"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}
