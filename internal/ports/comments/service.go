package comments

import (
	"context"

	"bhasaconnect/internal/core/comment"
)

// CommentsService پورت عملیات کامنت‌ها
type CommentsService interface {
	GetComments(ctx context.Context, postID string) ([]*comment.Comment, error)
	CreateComment(ctx context.Context, postID, content string) (*comment.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}
