package settingsapp

import (
	"context"

	"bhasaconnect/internal/core/session"
	"bhasaconnect/internal/core/user"
	"bhasaconnect/internal/ports/apiclient"
	usersPort "bhasaconnect/internal/ports/users"

	"go.uber.org/zap"
)

// SessionSink جایی که snapshot کاربر بعد از تغییر پروفایل اعمال می‌شود
type SessionSink interface {
	Snapshot() session.Session
	ApplyUser(u *user.User)
}

// SettingsService تغییر پروفایل، رمز و آواتار کاربر وارد شده
type SettingsService struct {
	Users   usersPort.UsersService
	Session SessionSink
	logger  *zap.Logger
}

func NewSettingsService(usersSvc usersPort.UsersService, sessionSink SessionSink, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		Users:   usersSvc,
		Session: sessionSink,
		logger:  logger,
	}
}

// UpdateProfile پاسخ سرور منبع حقیقت است و snapshot پایدار را تازه می‌کند
func (s *SettingsService) UpdateProfile(ctx context.Context, data usersPort.ProfileUpdate) (*user.User, error) {
	updated, err := s.Users.UpdateProfile(ctx, data)
	if err != nil {
		s.logger.Error("❌ Error updating profile", zap.Error(err))
		return nil, err
	}

	s.Session.ApplyUser(updated)
	s.logger.Info("✅ Profile updated", zap.String("userID", updated.ID))
	return updated, nil
}

// UpdatePassword رمز جدید قبل از فراخوانی شبکه اعتبارسنجی می‌شود
func (s *SettingsService) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return &apiclient.ValidationError{Field: "new_password", Message: "password must be at least 8 characters"}
	}

	if err := s.Users.UpdatePassword(ctx, currentPassword, newPassword); err != nil {
		s.logger.Error("❌ Error updating password", zap.Error(err))
		return err
	}
	s.logger.Info("✅ Password updated")
	return nil
}

// UploadAvatar اعتبارسنجی فایل مثل تصویر پست؛ آدرس جدید روی snapshot هم می‌نشیند
func (s *SettingsService) UploadAvatar(ctx context.Context, up apiclient.Upload) (string, error) {
	if err := up.Validate(); err != nil {
		return "", err
	}

	avatarURL, err := s.Users.UploadAvatar(ctx, up)
	if err != nil {
		s.logger.Error("❌ Error uploading avatar", zap.Error(err))
		return "", err
	}

	if snap := s.Session.Snapshot(); snap.User != nil {
		updated := *snap.User
		updated.ProfilePicture = avatarURL
		s.Session.ApplyUser(&updated)
	}

	s.logger.Info("✅ Avatar uploaded", zap.String("url", avatarURL))
	return avatarURL, nil
}
