package posts

import (
	"context"

	"bhasaconnect/internal/core/post"
	"bhasaconnect/internal/ports/apiclient"
)

// PostsService پورت عملیات پست‌ها؛ هر متد دقیقاً یک فراخوانی HTTP است
type PostsService interface {
	GetPosts(ctx context.Context, page, limit int) (*Page, error)
	GetFeedPosts(ctx context.Context, page, limit int) (*Page, error)
	GetUserPosts(ctx context.Context, userID string, page, limit int) (*Page, error)
	GetPost(ctx context.Context, id string) (*post.Post, error)
	CreatePost(ctx context.Context, data CreatePostData) (*post.Post, error)
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, id string) error
	UnlikePost(ctx context.Context, id string) error
	UploadImage(ctx context.Context, up apiclient.Upload) (string, error)
}

type CreatePostData struct {
	Content  string   `json:"content"`
	Language string   `json:"language,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Page یک صفحه از لیست پست‌ها؛ HasNext وقتی envelope فلگ ندارد nil است
type Page struct {
	Items   []*post.Post `json:"items"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	HasNext *bool        `json:"has_next,omitempty"`
}
