package user

type User struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	ProfilePicture     string   `json:"profile_picture,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Languages          []string `json:"languages"`
	Place              string   `json:"place,omitempty"`
	District           string   `json:"district,omitempty"`
	State              string   `json:"state,omitempty"`
	EmailNotifications bool     `json:"email_notifications"`
	FollowersCount     int      `json:"followers_count"`
	FollowingCount     int      `json:"following_count"`
	PostsCount         int      `json:"posts_count"`
	IsFollowing        bool     `json:"is_following"`
	CreatedAt          string   `json:"created_at,omitempty"`
}

// FullName نام کامل کاربر برای نمایش
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
