package feed

// Kind نوع فید: همه پست‌ها، فقط دنبال‌شده‌ها، یا پست‌های یک کاربر
type Kind string

const (
	KindAll       Kind = "all"
	KindFollowing Kind = "following"
	KindUser      Kind = "user"
)

// DefaultLimit اندازه صفحه پیش‌فرض؛ همان PAGINATION_SIZE کلاینت وب
const DefaultLimit = 20
