package auth

import "context"

// Usecase defines the interface for the authentication flows.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	Seed(ctx context.Context) (*SeedResponse, error)
}
