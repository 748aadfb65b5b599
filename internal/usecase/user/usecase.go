package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "identity-service/internal/domain/user"
	apperrors "identity-service/pkg/errors"
	"identity-service/pkg/hash"

	"github.com/go-playground/validator/v10"
)

// usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new user Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// ValidationError with a human-readable message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// internalErr hides unexpected storage failures from the caller while keeping
// typed application errors intact.
func internalErr(err error, message string) error {
	switch err.(type) {
	case *apperrors.ValidationError, *apperrors.ConflictError,
		*apperrors.NotFoundError, *apperrors.AuthenticationError:
		return err
	}
	return apperrors.NewInternalError(message, err)
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. The password, when present, is stored only as its digest.
func (uc *usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, internalErr(err, "failed to validate email uniqueness")
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("user", "email already in use")
	}

	var digest string
	if in.Password != "" {
		digest = hash.Digest(in.Password)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: digest,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, internalErr(err, "failed to create user")
	}
	return &CreateUserResponse{ID: id, Name: in.Name, Email: in.Email}, nil
}

// UpdateUser updates an existing user after validating the request and
// checking that the new email is not owned by a different user. A nil
// password keeps the stored digest; a non-nil one replaces it.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	current, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, internalErr(err, "failed to load user")
	}

	other, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, internalErr(err, "failed to validate email uniqueness")
	}
	if other != nil && other.ID != in.ID {
		uc.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", other.ID))
		return nil, apperrors.NewConflictError("user", "email already in use by another user")
	}

	digest := current.PasswordHash
	if in.Password != nil {
		digest = hash.Digest(*in.Password)
	}

	id, err := uc.repo.Update(ctx, &domain.User{
		ID:           in.ID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: digest,
	})
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, internalErr(err, "failed to update user")
	}

	return &UpdateUserResponse{ID: id}, nil
}

// DeleteUser deletes a user after validating the user ID.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	id, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, internalErr(err, "failed to delete user")
	}

	return &DeleteUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID after validating the request.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if in.ID <= 0 {
		uc.log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, internalErr(err, "failed to get user")
	}

	return &GetUserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// ListUsers retrieves all users. The credential digest never leaves the
// usecase layer.
func (uc *usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	uc.log.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, internalErr(err, "failed to list users")
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}
