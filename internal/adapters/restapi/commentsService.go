package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"bhasaconnect/internal/core/comment"
	"bhasaconnect/internal/ports/comments"
)

// CommentsServiceREST آداپتر خروجی برای endpointهای کامنت
type CommentsServiceREST struct {
	client *Client
}

func NewCommentsServiceREST(client *Client) *CommentsServiceREST {
	return &CommentsServiceREST{client: client}
}

var _ comments.CommentsService = (*CommentsServiceREST)(nil)

func (s *CommentsServiceREST) GetComments(ctx context.Context, postID string) ([]*comment.Comment, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(postID)+"/comments", nil)
	if err != nil {
		return nil, err
	}

	// envelope کامنت‌ها یک لایه عمیق‌تر است: data.comments
	var list struct {
		Comments []wireComment `json:"comments"`
	}
	if err := json.Unmarshal(unwrapData(raw), &list); err != nil {
		return nil, err
	}

	result := make([]*comment.Comment, 0, len(list.Comments))
	for _, w := range list.Comments {
		result = append(result, w.toDomain(postID))
	}
	return result, nil
}

func (s *CommentsServiceREST) CreateComment(ctx context.Context, postID, content string) (*comment.Comment, error) {
	body := map[string]string{"content": content}
	raw, err := s.client.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postID)+"/comments", body)
	if err != nil {
		return nil, err
	}

	var w wireComment
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, errors.New("response did not contain a comment")
	}
	return w.toDomain(postID), nil
}

func (s *CommentsServiceREST) DeleteComment(ctx context.Context, commentID string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(commentID), nil)
	return err
}
