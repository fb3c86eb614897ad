package session

import "bhasaconnect/internal/core/user"

// State وضعیت ماشین حالت session
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Session وضعیت فعلی احراز هویت کاربر
type Session struct {
	User            *user.User
	IsAuthenticated bool
	State           State
	Err             string
}
