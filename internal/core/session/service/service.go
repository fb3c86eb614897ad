package sessionapp

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"time"

	"bhasaconnect/internal/core/session"
	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/apiclient"
	"bhasaconnect/internal/ports/authapi"
	"bhasaconnect/internal/ports/tokenstore"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

var (
	ErrNoRefreshToken   = errors.New("no refresh token stored")
	ErrNotAuthenticated = errors.New("not authenticated")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionService ماشین حالت session: idle → loading → {success, error}
// هر حالتی با logout به idle برمی‌گردد
type SessionService struct {
	Gateway  authapi.AuthGateway
	Store    tokenstore.TokenStore
	Injector apiclient.TokenInjector
	logger   *zap.Logger

	mu    sync.RWMutex
	state session.Session
}

func NewSessionService(gateway authapi.AuthGateway, store tokenstore.TokenStore, injector apiclient.TokenInjector, logger *zap.Logger) *SessionService {
	return &SessionService{
		Gateway:  gateway,
		Store:    store,
		Injector: injector,
		logger:   logger,
		state:    session.Session{State: session.StateIdle},
	}
}

// Snapshot کپی از وضعیت فعلی session
func (s *SessionService) Snapshot() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Initialize وضعیت را از ذخیره‌سازی پایدار بازسازی می‌کند؛ هرگز خطا برنمی‌گرداند
func (s *SessionService) Initialize(ctx context.Context) {
	s.setLoading()

	token, err := s.Store.Get(tokenstore.KeyAccessToken)
	if err != nil || len(token) == 0 {
		s.setIdle()
		return
	}

	// توکن منقضی‌شده را بدون فراخوانی شبکه کنار می‌گذاریم
	if exp, ok := tokenExpiry(string(token)); ok && time.Now().After(exp) {
		s.logger.Info("Stored access token is expired, clearing session")
		s.clearAuth()
		s.setIdle()
		return
	}

	s.Injector.SetAuthToken(string(token))

	current, err := s.Gateway.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("Auth initialization failed", zap.Error(err))
		s.clearAuth()
		s.setIdle()
		return
	}

	s.persistUser(current)
	s.setUser(current)
	s.logger.Info("✅ Session restored", zap.String("userID", current.ID))
}

// Login ورود کاربر؛ در موفقیت توکن و snapshot کاربر ذخیره می‌شود
func (s *SessionService) Login(ctx context.Context, creds authapi.Credentials) error {
	s.setLoading()

	pair, err := s.Gateway.Login(ctx, creds)
	if err != nil {
		s.setError(userFacing(err))
		return err
	}

	s.Injector.SetAuthToken(pair.AccessToken)

	current, err := s.Gateway.GetProfile(ctx)
	if err != nil {
		// توکن گرفتیم ولی پروفایل نیامد: وضعیت نیمه‌کاره نگه نمی‌داریم
		s.clearAuth()
		s.setError(userFacing(err))
		return err
	}

	if err := s.Store.Set(tokenstore.KeyAccessToken, []byte(pair.AccessToken)); err != nil {
		s.logger.Warn("Could not persist access token", zap.Error(err))
	}
	if pair.RefreshToken != "" {
		if err := s.Store.Set(tokenstore.KeyRefreshToken, []byte(pair.RefreshToken)); err != nil {
			s.logger.Warn("Could not persist refresh token", zap.Error(err))
		}
	}
	s.persistUser(current)

	s.setUser(current)
	s.logger.Info("✅ Login successful", zap.String("userID", current.ID))
	return nil
}

// Register ثبت‌نام و سپس ورود خودکار با همان ایمیل و رمز
func (s *SessionService) Register(ctx context.Context, data authapi.RegisterData) error {
	if !emailPattern.MatchString(data.Email) {
		err := &apiclient.ValidationError{Field: "email", Message: "invalid email address"}
		s.setError(err.Error())
		return err
	}
	if len(data.Password) < 8 {
		err := &apiclient.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
		s.setError(err.Error())
		return err
	}

	s.setLoading()

	if err := s.Gateway.Register(ctx, data); err != nil {
		s.setError(userFacing(err))
		return err
	}

	return s.Login(ctx, authapi.Credentials{Email: data.Email, Password: data.Password})
}

// Logout اطلاع به سرور best-effort است؛ وضعیت محلی همیشه پاک می‌شود
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.Gateway.Logout(ctx); err != nil {
		s.logger.Warn("Logout API call failed", zap.Error(err))
	}
	s.clearAuth()
	s.setIdle()
	s.logger.Info("Logged out")
}

// Refresh تعویض refresh token با access token جدید؛ در شکست session پاک می‌شود
func (s *SessionService) Refresh(ctx context.Context) error {
	refresh, err := s.Store.Get(tokenstore.KeyRefreshToken)
	if err != nil || len(refresh) == 0 {
		s.clearAuth()
		s.setIdle()
		return ErrNoRefreshToken
	}

	access, err := s.Gateway.Refresh(ctx, string(refresh))
	if err != nil {
		s.clearAuth()
		s.setIdle()
		return err
	}

	s.Injector.SetAuthToken(access)
	if err := s.Store.Set(tokenstore.KeyAccessToken, []byte(access)); err != nil {
		s.logger.Warn("Could not persist refreshed token", zap.Error(err))
	}

	current, err := s.Gateway.GetProfile(ctx)
	if err == nil {
		s.persistUser(current)
		s.setUser(current)
	}
	return nil
}

// TokenExpiry انقضای توکن ذخیره‌شده؛ برای زمان‌بندی refresh worker
func (s *SessionService) TokenExpiry() (time.Time, bool) {
	token, err := s.Store.Get(tokenstore.KeyAccessToken)
	if err != nil || len(token) == 0 {
		return time.Time{}, false
	}
	return tokenExpiry(string(token))
}

func (s *SessionService) HasRefreshToken() bool {
	refresh, err := s.Store.Get(tokenstore.KeyRefreshToken)
	return err == nil && len(refresh) > 0
}

// ApplyUser جایگزینی snapshot کاربر پس از تغییر پروفایل؛ نسخه پایدار هم تازه می‌شود
func (s *SessionService) ApplyUser(u *user.User) {
	if u == nil {
		return
	}
	s.persistUser(u)
	s.setUser(u)
}

func (s *SessionService) persistUser(u *user.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := s.Store.Set(tokenstore.KeyUser, raw); err != nil {
		s.logger.Warn("Could not persist user snapshot", zap.Error(err))
	}
}

// clearAuth هر سه کلید پایدار را پاک می‌کند و Bearer را برمی‌دارد
func (s *SessionService) clearAuth() {
	_ = s.Store.Delete(tokenstore.KeyAccessToken)
	_ = s.Store.Delete(tokenstore.KeyRefreshToken)
	_ = s.Store.Delete(tokenstore.KeyUser)
	s.Injector.RemoveAuthToken()
}

func (s *SessionService) setLoading() {
	s.mu.Lock()
	s.state.State = session.StateLoading
	s.state.Err = ""
	s.mu.Unlock()
}

func (s *SessionService) setIdle() {
	s.mu.Lock()
	s.state = session.Session{State: session.StateIdle}
	s.mu.Unlock()
}

func (s *SessionService) setUser(u *user.User) {
	s.mu.Lock()
	s.state = session.Session{
		User:            u,
		IsAuthenticated: true,
		State:           session.StateSuccess,
	}
	s.mu.Unlock()
}

func (s *SessionService) setError(msg string) {
	s.mu.Lock()
	s.state.State = session.StateError
	s.state.Err = msg
	s.mu.Unlock()
}

// tokenExpiry خواندن claim انقضا بدون اعتبارسنجی امضا؛ امضا مال سرور است
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}

func userFacing(err error) string {
	var apiErr *apiclient.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
