package models

// User is the identity record of an authenticated user.
type User struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Session is the authentication context of one user. Authenticated is
// derived: true exactly when User is non-nil.
type Session struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"authenticated"`
}
