package user

// User represents a user entity in the system.
type User struct {
	ID           int64  // ID is the unique identifier for the user
	Name         string // Name is the full name of the user
	Email        string // Email is the unique email address of the user
	PasswordHash string // PasswordHash is the hex digest of the user's credential, never exposed over the API
}
