// Package auth implements the identity flows: registration with an
// optimistic uniqueness check, credential-based login issuing a signed bearer
// token, and the development-only seed account.
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "identity-service/internal/domain/user"
	"identity-service/internal/usecase/user"
	apperrors "identity-service/pkg/errors"
	"identity-service/pkg/hash"
	"identity-service/pkg/token"

	"github.com/go-playground/validator/v10"
)

// Seed account created by the development-only seed operation.
const (
	seedName     = "Harold"
	seedEmail    = "harold@test.com"
	seedPassword = "MiPass123!"
)

type usecase struct {
	repo        user.Repository
	issuer      *token.Issuer
	log         *zap.Logger
	validate    *validator.Validate
	development bool
}

// New creates the auth Usecase. development gates the Seed operation.
func New(r user.Repository, issuer *token.Issuer, development bool, log *zap.Logger) Usecase {
	return &usecase{
		repo:        r,
		issuer:      issuer,
		log:         log,
		validate:    validator.New(),
		development: development,
	}
}

// Register creates a new account: uniqueness check, digest, insert. The
// application-level existence check is best-effort; the unique constraint in
// the store is the authoritative guard, and its violation surfaces as the
// same ConflictError, so a retry after conflict is always safe.
func (uc *usecase) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)

	uc.log.Info("registration attempt", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("registration validation failed", zap.Error(err))
		return nil, apperrors.NewValidationError("", "name, email and password are required")
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("registration rejected: email in use", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("user", "email already in use")
	}

	_, err = uc.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash.Digest(in.Password),
	})
	if err != nil {
		if _, ok := err.(*apperrors.ConflictError); ok {
			// Lost the race against a concurrent registration; same answer
			// as the existence check.
			return nil, err
		}
		uc.log.Error("failed to register user", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	uc.log.Info("user registered", zap.String("email", in.Email))
	return &RegisterResponse{Message: "user registered successfully"}, nil
}

// Login verifies the presented credentials and issues a token. An unknown
// email and a wrong password produce the same AuthenticationError, so
// callers cannot enumerate accounts.
func (uc *usecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	uc.log.Info("login attempt", zap.String("email", in.Email))

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to look up user", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		uc.log.Warn("login failed: user not found", zap.String("email", in.Email))
		return nil, apperrors.NewAuthenticationError()
	}

	if !hash.Verify(in.Password, u.PasswordHash) {
		uc.log.Warn("login failed: invalid password", zap.String("email", in.Email))
		return nil, apperrors.NewAuthenticationError()
	}

	tok, err := uc.issuer.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	uc.log.Info("login successful", zap.String("email", in.Email))
	return &LoginResponse{Token: tok}, nil
}

// Seed creates the fixed test account. It is only available in the
// development environment; anywhere else it is forbidden.
func (uc *usecase) Seed(ctx context.Context) (*SeedResponse, error) {
	if !uc.development {
		return nil, apperrors.NewForbiddenError("seed is only available in development")
	}

	existing, err := uc.repo.GetByEmail(ctx, seedEmail)
	if err != nil {
		uc.log.Error("failed to check seed user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to check seed user", err)
	}
	if existing != nil {
		return &SeedResponse{Message: "seed user already exists"}, nil
	}

	_, err = uc.repo.Create(ctx, &domain.User{
		Name:         seedName,
		Email:        seedEmail,
		PasswordHash: hash.Digest(seedPassword),
	})
	if err != nil {
		uc.log.Error("failed to create seed user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create seed user", err)
	}

	uc.log.Info("seed user created", zap.String("email", seedEmail))
	return &SeedResponse{
		Message:  "seed user created",
		Email:    seedEmail,
		Password: seedPassword,
	}, nil
}
