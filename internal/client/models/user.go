package models

// User is the identity attached to a session.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Credentials is the request body of register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
