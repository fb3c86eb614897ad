package commentapp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"bhasaconnect/internal/core/comment"
	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/apiclient"
	commentsPort "bhasaconnect/internal/ports/comments"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const maxCommentLength = 500

// ErrSubmitPending یک ارسال قبلی هنوز در پرواز است
var ErrSubmitPending = errors.New("a comment submit is already in progress")

// CommentListService لیست کامنت‌های یک پست با درج خوش‌بینانه در ابتدای لیست
type CommentListService struct {
	Comments commentsPort.CommentsService
	PostID   string
	logger   *zap.Logger

	mu         sync.Mutex
	items      []*comment.Comment
	submitting bool
}

func NewCommentListService(commentsSvc commentsPort.CommentsService, postID string, logger *zap.Logger) *CommentListService {
	return &CommentListService{
		Comments: commentsSvc,
		PostID:   postID,
		logger:   logger,
	}
}

func (s *CommentListService) Items() []*comment.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*comment.Comment, len(s.items))
	copy(out, s.items)
	return out
}

// Count تعداد گزارش‌شده کامنت‌ها؛ همیشه با طول لیست برابر است
func (s *CommentListService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *CommentListService) Load(ctx context.Context) error {
	fetched, err := s.Comments.GetComments(ctx, s.PostID)
	if err != nil {
		s.logger.Error("❌ Error loading comments", zap.String("postID", s.PostID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.items = fetched
	s.mu.Unlock()
	return nil
}

// Add درج خوش‌بینانه با id موقت؛ موفقیت id واقعی سرور را جایگزین می‌کند
// و شکست، کامنت موقت را برمی‌دارد
func (s *CommentListService) Add(ctx context.Context, content string, author user.User) (*comment.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &apiclient.ValidationError{Field: "content", Message: "comment must not be empty"}
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, &apiclient.ValidationError{Field: "content", Message: "comment must be at most 500 characters"}
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitPending
	}
	s.submitting = true

	temp := &comment.Comment{
		ID:        "pending-" + uuid.Must(uuid.NewV4()).String(),
		PostID:    s.PostID,
		Author:    author,
		Content:   content,
		CanDelete: true,
		CreatedAt: time.Now(),
	}
	s.items = append([]*comment.Comment{temp}, s.items...)
	s.mu.Unlock()

	created, err := s.Comments.CreateComment(ctx, s.PostID, content)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.remove(temp.ID)
		s.mu.Unlock()
		s.logger.Error("❌ Error creating comment", zap.String("postID", s.PostID), zap.Error(err))
		return nil, err
	}
	// reconcile: کامنت موقت با نسخه سرور جایگزین می‌شود
	for i, c := range s.items {
		if c.ID == temp.ID {
			s.items[i] = created
			break
		}
	}
	s.mu.Unlock()
	return created, nil
}

// Delete حذف خوش‌بینانه؛ در شکست کامنت سر جای قبلی برمی‌گردد
func (s *CommentListService) Delete(ctx context.Context, commentID string) error {
	s.mu.Lock()
	idx := -1
	var removed *comment.Comment
	for i, c := range s.items {
		if c.ID == commentID {
			idx, removed = i, c
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	if err := s.Comments.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("❌ Error deleting comment", zap.String("commentID", commentID), zap.Error(err))
		s.mu.Lock()
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]*comment.Comment{removed}, s.items[idx:]...)...)
		s.mu.Unlock()
		return err
	}
	return nil
}

// remove فقط با قفل گرفته‌شده صدا زده می‌شود
func (s *CommentListService) remove(commentID string) {
	for i, c := range s.items {
		if c.ID == commentID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
