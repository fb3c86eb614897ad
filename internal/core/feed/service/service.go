package feedapp

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"bhasaconnect/internal/core/feed"
	"bhasaconnect/internal/core/post"
	"bhasaconnect/internal/ports/apiclient"
	postsPort "bhasaconnect/internal/ports/posts"

	"go.uber.org/zap"
)

const maxContentLength = 500

var hashtagPattern = regexp.MustCompile(`#[\w]+`)

// FeedService نگهدارنده لیست صفحه‌بندی‌شده پست‌ها با بروزرسانی خوش‌بینانه
// سیاست: در شکست rollback، در موفقیت reconcile با پاسخ سرور
type FeedService struct {
	Posts  postsPort.PostsService
	Kind   feed.Kind
	UserID string // فقط برای KindUser
	Limit  int
	logger *zap.Logger

	mu          sync.Mutex
	items       []*post.Post
	page        int
	hasMore     bool
	likePending map[string]bool
}

func NewFeedService(postsSvc postsPort.PostsService, kind feed.Kind, userID string, logger *zap.Logger) *FeedService {
	return &FeedService{
		Posts:       postsSvc,
		Kind:        kind,
		UserID:      userID,
		Limit:       feed.DefaultLimit,
		logger:      logger,
		hasMore:     true,
		likePending: map[string]bool{},
	}
}

// Items کپی از لیست فعلی برای نمایش
func (s *FeedService) Items() []*post.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*post.Post, len(s.items))
	copy(out, s.items)
	return out
}

func (s *FeedService) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Load بارگذاری صفحه اول؛ لیست قبلی جایگزین می‌شود
func (s *FeedService) Load(ctx context.Context) error {
	return s.load(ctx, 1, false)
}

// LoadMore صفحه بعدی را به انتهای لیست اضافه می‌کند
func (s *FeedService) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	next := s.page + 1
	s.mu.Unlock()
	return s.load(ctx, next, true)
}

func (s *FeedService) load(ctx context.Context, page int, append_ bool) error {
	var (
		result *postsPort.Page
		err    error
	)
	switch {
	case s.Kind == feed.KindUser:
		result, err = s.Posts.GetUserPosts(ctx, s.UserID, page, s.Limit)
	case s.Kind == feed.KindFollowing:
		result, err = s.Posts.GetFeedPosts(ctx, page, s.Limit)
	default:
		result, err = s.Posts.GetPosts(ctx, page, s.Limit)
	}
	if err != nil {
		s.logger.Error("❌ Error loading posts", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if append_ {
		s.items = append(s.items, result.Items...)
	} else {
		s.items = result.Items
	}
	s.page = page
	// اگر envelope فلگ نداشت: صفحه پر یعنی احتمالاً ادامه دارد
	if result.HasNext != nil {
		s.hasMore = *result.HasNext
	} else {
		s.hasMore = len(result.Items) == s.Limit
	}
	return nil
}

// ToggleLike لایک/آنلایک خوش‌بینانه؛ شمارنده و فلگ با هم جابه‌جا می‌شوند
func (s *FeedService) ToggleLike(ctx context.Context, postID string) error {
	s.mu.Lock()
	if s.likePending[postID] {
		s.mu.Unlock()
		return nil // اکشن قبلی هنوز در پرواز است
	}
	target := s.find(postID)
	if target == nil {
		s.mu.Unlock()
		return nil
	}
	s.likePending[postID] = true
	wasLiked := target.IsLiked
	s.applyLike(postID, !wasLiked)
	s.mu.Unlock()

	var err error
	if wasLiked {
		err = s.Posts.UnlikePost(ctx, postID)
	} else {
		err = s.Posts.LikePost(ctx, postID)
	}

	s.mu.Lock()
	delete(s.likePending, postID)
	if err != nil {
		// rollback به وضعیت قبلی
		s.applyLike(postID, wasLiked)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("❌ Error toggling like", zap.String("postID", postID), zap.Error(err))
	}
	return err
}

// applyLike فقط با قفل گرفته‌شده صدا زده می‌شود
func (s *FeedService) applyLike(postID string, liked bool) {
	p := s.find(postID)
	if p == nil || p.IsLiked == liked {
		return
	}
	p.IsLiked = liked
	if liked {
		p.LikesCount++
	} else if p.LikesCount > 0 {
		p.LikesCount--
	}
}

func (s *FeedService) find(postID string) *post.Post {
	for _, p := range s.items {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

// Delete حذف خوش‌بینانه؛ در شکست پست سر جای قبلی برمی‌گردد
func (s *FeedService) Delete(ctx context.Context, postID string) error {
	s.mu.Lock()
	idx := -1
	var removed *post.Post
	for i, p := range s.items {
		if p.ID == postID {
			idx, removed = i, p
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	if err := s.Posts.DeletePost(ctx, postID); err != nil {
		s.logger.Error("❌ Error deleting post", zap.String("postID", postID), zap.Error(err))
		s.mu.Lock()
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]*post.Post{removed}, s.items[idx:]...)...)
		s.mu.Unlock()
		return err
	}
	return nil
}

// CreatePost اعتبارسنجی کلاینتی، آپلود اختیاری تصویر، و سپس ایجاد پست
func (s *FeedService) CreatePost(ctx context.Context, content string, image *apiclient.Upload) (*post.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &apiclient.ValidationError{Field: "content", Message: "content must not be empty"}
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return nil, &apiclient.ValidationError{Field: "content", Message: "content must be at most 500 characters"}
	}

	data := postsPort.CreatePostData{
		Content: content,
		Tags:    extractHashtags(content),
	}

	if image != nil {
		if err := ValidateImage(*image); err != nil {
			return nil, err
		}
		imageURL, err := s.Posts.UploadImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		data.ImageURL = imageURL
	}

	created, err := s.Posts.CreatePost(ctx, data)
	if err != nil {
		s.logger.Error("❌ Error creating post", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.items = append([]*post.Post{created}, s.items...)
	s.mu.Unlock()

	s.logger.Info("📝 Created post", zap.String("ID", created.ID))
	return created, nil
}

// ValidateImage بررسی نوع و حجم فایل قبل از هر فراخوانی شبکه
func ValidateImage(up apiclient.Upload) error {
	return up.Validate()
}

func extractHashtags(content string) []string {
	matches := hashtagPattern.FindAllString(content, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.TrimPrefix(m, "#"))
	}
	return tags
}
