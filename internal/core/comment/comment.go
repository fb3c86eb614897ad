package comment

import (
	"time"
	"bhasaconnect/internal/core/user"
)

// Comment مدل کانونی کامنت
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    user.User `json:"author"`
	Content   string    `json:"content"`
	CanDelete bool      `json:"can_delete"`
	CreatedAt time.Time `json:"created_at"`
}
