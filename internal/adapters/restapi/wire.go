package restapi

import (
	"bhasaconnect/internal/core/comment"
	"bhasaconnect/internal/core/post"
	"bhasaconnect/internal/core/user"
)

// شکل‌های سیمی بک‌اند؛ اینجا به مدل کانونی تبدیل می‌شوند

type wireUser struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	ProfilePicture     string   `json:"profile_picture"`
	Bio                string   `json:"bio"`
	Languages          []string `json:"languages"`
	Place              string   `json:"place"`
	District           string   `json:"district"`
	State              string   `json:"state"`
	EmailNotifications *bool    `json:"email_notifications"`
	FollowersCount     int      `json:"followers_count"`
	FollowingCount     int      `json:"following_count"`
	PostsCount         int      `json:"posts_count"`
	IsFollowing        bool     `json:"is_following"`
	CreatedAt          string   `json:"created_at"`
}

func (w wireUser) toDomain() *user.User {
	u := &user.User{
		ID:             w.ID,
		Email:          w.Email,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		ProfilePicture: w.ProfilePicture,
		Bio:            w.Bio,
		Languages:      w.Languages,
		Place:          w.Place,
		District:       w.District,
		State:          w.State,
		FollowersCount: w.FollowersCount,
		FollowingCount: w.FollowingCount,
		PostsCount:     w.PostsCount,
		IsFollowing:    w.IsFollowing,
		CreatedAt:      w.CreatedAt,
	}
	// بک‌اند همیشه این فیلد را نمی‌فرستد
	u.EmailNotifications = w.EmailNotifications == nil || *w.EmailNotifications
	return u
}

type wirePost struct {
	ID           string   `json:"id"`
	User         wireUser `json:"user"`
	Content      string   `json:"content"`
	Language     string   `json:"language"`
	ImageURL     string   `json:"image_url"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	IsLiked      bool     `json:"is_liked"`
	CreatedAt    string   `json:"created_at"`
}

func (w wirePost) toDomain() *post.Post {
	return &post.Post{
		ID:            w.ID,
		Author:        *w.User.toDomain(),
		Content:       w.Content,
		Language:      w.Language,
		MediaURL:      w.ImageURL,
		LikesCount:    w.LikeCount,
		CommentsCount: w.CommentCount,
		IsLiked:       w.IsLiked,
		CreatedAt:     parseTime(w.CreatedAt),
	}
}

type wireComment struct {
	ID        string   `json:"id"`
	User      wireUser `json:"user"`
	Content   string   `json:"content"`
	CanDelete bool     `json:"can_delete"`
	CreatedAt string   `json:"created_at"`
}

func (w wireComment) toDomain(postID string) *comment.Comment {
	return &comment.Comment{
		ID:        w.ID,
		PostID:    postID,
		Author:    *w.User.toDomain(),
		Content:   w.Content,
		CanDelete: w.CanDelete,
		CreatedAt: parseTime(w.CreatedAt),
	}
}

type wirePage struct {
	Items   []wirePost `json:"items"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	Limit   int        `json:"limit"`
	HasNext *bool      `json:"has_next"`
}
