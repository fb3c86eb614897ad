package tokenstore

// کلیدهای ذخیره‌سازی؛ همنام با کلیدهای کلاینت وب
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// TokenStore پورت ذخیره‌سازی key-value پایدار برای توکن‌ها و snapshot کاربر
type TokenStore interface {
	Set(key string, value []byte) error
	// Get وقتی کلید وجود ندارد (nil, nil) برمی‌گرداند
	Get(key string) ([]byte, error)
	Delete(key string) error
}
