package discoveryapp

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"bhasaconnect/internal/core/feed"
	"bhasaconnect/internal/core/user"
	usersPort "bhasaconnect/internal/ports/users"

	"go.uber.org/zap"
)

// MinQueryLength جستجوهای کوتاه‌تر اصلاً به شبکه نمی‌روند
const MinQueryLength = 2

// DiscoveryService نتایج جستجوی کاربران با فالوی خوش‌بینانه
type DiscoveryService struct {
	Users  usersPort.UsersService
	Limit  int
	logger *zap.Logger

	mu            sync.Mutex
	query         string
	items         []*user.User
	page          int
	hasNext       bool
	followPending map[string]bool
}

func NewDiscoveryService(usersSvc usersPort.UsersService, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		Users:         usersSvc,
		Limit:         feed.DefaultLimit,
		logger:        logger,
		followPending: map[string]bool{},
	}
}

func (s *DiscoveryService) Results() []*user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*user.User, len(s.items))
	copy(out, s.items)
	return out
}

func (s *DiscoveryService) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNext
}

// Search جستجوی صفحه اول؛ کوئری کوتاه فقط نتایج را پاک می‌کند
func (s *DiscoveryService) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		s.mu.Lock()
		s.query = ""
		s.items = nil
		s.hasNext = false
		s.mu.Unlock()
		return nil
	}

	result, err := s.Users.SearchUsers(ctx, query, 1, s.Limit)
	if err != nil {
		s.logger.Error("❌ Error searching users", zap.String("query", query), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.query = query
	s.items = result.Items
	s.page = 1
	s.hasNext = result.HasNext
	s.mu.Unlock()
	return nil
}

// LoadMore صفحه بعدی همان کوئری
func (s *DiscoveryService) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.query == "" || !s.hasNext {
		s.mu.Unlock()
		return nil
	}
	query, next := s.query, s.page+1
	s.mu.Unlock()

	result, err := s.Users.SearchUsers(ctx, query, next, s.Limit)
	if err != nil {
		s.logger.Error("❌ Error searching users", zap.String("query", query), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.items = append(s.items, result.Items...)
	s.page = next
	s.hasNext = result.HasNext
	s.mu.Unlock()
	return nil
}

// ToggleFollow فالو/آنفالوی خوش‌بینانه؛ فلگ و شمارنده فالوور با هم
func (s *DiscoveryService) ToggleFollow(ctx context.Context, userID string) error {
	s.mu.Lock()
	if s.followPending[userID] {
		s.mu.Unlock()
		return nil
	}
	target := s.find(userID)
	if target == nil {
		s.mu.Unlock()
		return nil
	}
	s.followPending[userID] = true
	wasFollowing := target.IsFollowing
	s.applyFollow(userID, !wasFollowing)
	s.mu.Unlock()

	var err error
	if wasFollowing {
		err = s.Users.UnfollowUser(ctx, userID)
	} else {
		err = s.Users.FollowUser(ctx, userID)
	}

	s.mu.Lock()
	delete(s.followPending, userID)
	if err != nil {
		s.applyFollow(userID, wasFollowing)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("❌ Error toggling follow", zap.String("userID", userID), zap.Error(err))
	}
	return err
}

// applyFollow فقط با قفل گرفته‌شده صدا زده می‌شود
func (s *DiscoveryService) applyFollow(userID string, following bool) {
	u := s.find(userID)
	if u == nil || u.IsFollowing == following {
		return
	}
	u.IsFollowing = following
	if following {
		u.FollowersCount++
	} else if u.FollowersCount > 0 {
		u.FollowersCount--
	}
}

func (s *DiscoveryService) find(userID string) *user.User {
	for _, u := range s.items {
		if u.ID == userID {
			return u
		}
	}
	return nil
}
