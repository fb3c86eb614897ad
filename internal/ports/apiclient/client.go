package apiclient

import "fmt"

// TokenInjector تزریق/حذف توکن Bearer روی کلاینت مشترک HTTP
type TokenInjector interface {
	SetAuthToken(token string)
	RemoveAuthToken()
}

// Upload داده‌ی فایل برای آپلود multipart (فیلد file)
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Validate بررسی نوع و حجم فایل قبل از هر فراخوانی شبکه
func (u Upload) Validate() error {
	if !allowedImageTypes[u.ContentType] {
		return &ValidationError{Field: "file", Message: "image type must be jpeg, png or webp"}
	}
	if len(u.Data) > maxUploadSize {
		return &ValidationError{Field: "file", Message: "image must be at most 5MB"}
	}
	return nil
}

// ApiError پاسخ غیر 2xx از بک‌اند
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// UserMessage متن قابل نمایش برای کاربر بر اساس status code
func (e *ApiError) UserMessage() string {
	switch e.StatusCode {
	case 400:
		return "Invalid request. Please check your input."
	case 422:
		return "Some fields are invalid. Please review and try again."
	case 500:
		return "Something went wrong on our side. Please try again."
	case 503:
		return "Service is temporarily unavailable. Please try again later."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "An error occurred"
	}
}

// NetworkError خطای سطح شبکه قبل از رسیدن پاسخ
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError خطای اعتبارسنجی سمت کلاینت؛ هرگز به سرور ارسال نمی‌شود
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
