package auth

// RegisterRequest represents the request payload for registering a new user.
// All fields are required non-empty after whitespace trim.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterResponse acknowledges a successful registration. No sensitive
// fields are echoed back.
type RegisterResponse struct {
	Message string
}

// LoginRequest represents the credentials presented at login.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string
}

// SeedResponse describes the development-only seed account. Email and
// Password are only populated when the account was just created.
type SeedResponse struct {
	Message  string
	Email    string
	Password string
}
