package models

// User is the profile of the authenticated principal as returned by /auth/me.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorPayload is the structured error body of the API.
type ErrorPayload struct {
	Message string `json:"message,omitempty"`
}
