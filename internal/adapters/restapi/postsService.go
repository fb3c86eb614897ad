package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bhasaconnect/internal/core/post"
	"bhasaconnect/internal/ports/apiclient"
	"bhasaconnect/internal/ports/posts"

	"github.com/tidwall/gjson"
)

// PostsServiceREST آداپتر خروجی برای endpointهای پست
type PostsServiceREST struct {
	client *Client
}

func NewPostsServiceREST(client *Client) *PostsServiceREST {
	return &PostsServiceREST{client: client}
}

var _ posts.PostsService = (*PostsServiceREST)(nil)

func (s *PostsServiceREST) GetPosts(ctx context.Context, page, limit int) (*posts.Page, error) {
	return s.listPosts(ctx, fmt.Sprintf("/api/posts/?page=%d&limit=%d", page, limit))
}

func (s *PostsServiceREST) GetFeedPosts(ctx context.Context, page, limit int) (*posts.Page, error) {
	return s.listPosts(ctx, fmt.Sprintf("/api/posts/feed?page=%d&limit=%d", page, limit))
}

func (s *PostsServiceREST) GetUserPosts(ctx context.Context, userID string, page, limit int) (*posts.Page, error) {
	return s.listPosts(ctx, fmt.Sprintf("/api/posts/?author=%s&page=%d&limit=%d", url.QueryEscape(userID), page, limit))
}

func (s *PostsServiceREST) listPosts(ctx context.Context, endpoint string) (*posts.Page, error) {
	raw, err := s.client.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var wp wirePage
	if err := json.Unmarshal(unwrapData(raw), &wp); err != nil {
		return nil, err
	}

	page := &posts.Page{
		Items:   make([]*post.Post, 0, len(wp.Items)),
		Total:   wp.Total,
		Page:    wp.Page,
		Limit:   wp.Limit,
		HasNext: wp.HasNext,
	}
	for _, item := range wp.Items {
		page.Items = append(page.Items, item.toDomain())
	}
	return page, nil
}

func (s *PostsServiceREST) GetPost(ctx context.Context, id string) (*post.Post, error) {
	raw, err := s.client.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodePost(raw)
}

func (s *PostsServiceREST) CreatePost(ctx context.Context, data posts.CreatePostData) (*post.Post, error) {
	raw, err := s.client.do(ctx, http.MethodPost, "/api/posts/", data)
	if err != nil {
		return nil, err
	}
	return decodePost(raw)
}

func (s *PostsServiceREST) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil)
	return err
}

func (s *PostsServiceREST) LikePost(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(id)+"/like", nil)
	return err
}

func (s *PostsServiceREST) UnlikePost(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id)+"/like", nil)
	return err
}

func (s *PostsServiceREST) UploadImage(ctx context.Context, up apiclient.Upload) (string, error) {
	raw, err := s.client.upload(ctx, "/api/posts/upload-image", up)
	if err != nil {
		return "", err
	}

	// بک‌اند گاهی image_url و گاهی url می‌فرستد
	for _, key := range []string{"data.image_url", "data.url", "image_url", "url"} {
		if v := gjson.GetBytes(raw, key); v.Exists() && v.String() != "" {
			return v.String(), nil
		}
	}
	return "", errors.New("upload response did not contain an image url")
}

func decodePost(raw []byte) (*post.Post, error) {
	var w wirePost
	if err := json.Unmarshal(unwrapData(raw), &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, errors.New("response did not contain a post")
	}
	return w.toDomain(), nil
}
