package user

// CreateUserRequest represents the request payload for creating a new user.
// Password is optional; when empty the account is created without a usable
// credential and cannot log in until one is set.
type CreateUserRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// UpdateUserRequest represents the request payload for updating an existing
// user. A nil Password leaves the stored credential digest untouched.
type UpdateUserRequest struct {
	ID       int64  `validate:"required"`
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password *string
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
// The credential digest is deliberately absent.
type GetUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
