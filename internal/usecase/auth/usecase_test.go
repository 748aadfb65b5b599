package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "identity-service/internal/domain/user"
	"identity-service/internal/usecase/auth"
	apperrors "identity-service/pkg/errors"
	"identity-service/pkg/hash"
	"identity-service/pkg/token"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

var testSecret = []byte("test-signing-secret")

func setupAuthUsecase(t *testing.T, development bool) (auth.Usecase, *MockRepository) {
	mockRepo := new(MockRepository)
	issuer := token.NewIssuer(testSecret, "identity-service", "identity-client")
	uc := auth.New(mockRepo, issuer, development, zaptest.NewLogger(t))
	return uc, mockRepo
}

// ==================== REGISTER TESTS ====================

func TestRegister_Success(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Harold" &&
			u.Email == "harold@test.com" &&
			u.PasswordHash == hash.Digest("MiPass123!")
	})).Return(int64(1), nil)

	resp, err := uc.Register(ctx, auth.RegisterRequest{
		Name:     "Harold",
		Email:    "harold@test.com",
		Password: "MiPass123!",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user registered successfully", resp.Message)
	mockRepo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	uc, _ := setupAuthUsecase(t, true)
	ctx := context.Background()

	cases := []auth.RegisterRequest{
		{Email: "a@b.com", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@b.com"},
		{Name: "   ", Email: "a@b.com", Password: "x"},
	}

	for _, req := range cases {
		resp, err := uc.Register(ctx, req)

		assert.Error(t, err)
		assert.Nil(t, resp)

		var ve *apperrors.ValidationError
		assert.True(t, errors.As(err, &ve))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Email: "harold@test.com"}
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(existing, nil)

	resp, err := uc.Register(ctx, auth.RegisterRequest{
		Name:     "Harold",
		Email:    "harold@test.com",
		Password: "MiPass123!",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)

	var ce *apperrors.ConflictError
	assert.True(t, errors.As(err, &ce))
	mockRepo.AssertExpectations(t)
}

func TestRegister_LostRaceSurfacesConflict(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	// The existence check passes but the unique constraint fires on insert.
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.Anything).
		Return(int64(0), apperrors.NewConflictError("user", "email already in use"))

	resp, err := uc.Register(ctx, auth.RegisterRequest{
		Name:     "Harold",
		Email:    "harold@test.com",
		Password: "MiPass123!",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)

	var ce *apperrors.ConflictError
	assert.True(t, errors.As(err, &ce))
	mockRepo.AssertExpectations(t)
}

func TestRegister_TrimsCredentialBeforeDigest(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.PasswordHash == hash.Digest("MiPass123!")
	})).Return(int64(1), nil)

	_, err := uc.Register(ctx, auth.RegisterRequest{
		Name:     "  Harold  ",
		Email:    "  harold@test.com  ",
		Password: "  MiPass123!  ",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// ==================== LOGIN TESTS ====================

func TestLogin_Success_IssuesVerifiableToken(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	stored := &domain.User{
		ID:           5,
		Name:         "Harold",
		Email:        "harold@test.com",
		PasswordHash: hash.Digest("MiPass123!"),
	}
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(stored, nil)

	resp, err := uc.Login(ctx, auth.LoginRequest{
		Email:    "harold@test.com",
		Password: "MiPass123!",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The issued token must pass verification and carry the user's claims.
	verifier := token.NewVerifier(testSecret, "identity-service", "identity-client")
	claims, err := verifier.Verify(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, "harold@test.com", claims.Email)
	assert.Equal(t, "Harold", claims.Name)

	id, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)

	mockRepo.AssertExpectations(t)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	stored := &domain.User{
		ID:           5,
		Email:        "harold@test.com",
		PasswordHash: hash.Digest("MiPass123!"),
	}
	mockRepo.On("GetByEmail", ctx, "nobody@test.com").Return(nil, nil)
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(stored, nil)

	_, errUnknown := uc.Login(ctx, auth.LoginRequest{
		Email:    "nobody@test.com",
		Password: "whatever",
	})
	_, errWrongPass := uc.Login(ctx, auth.LoginRequest{
		Email:    "harold@test.com",
		Password: "wrong",
	})

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	// Same error type, same message: no account enumeration.
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

	var ae *apperrors.AuthenticationError
	assert.True(t, errors.As(errUnknown, &ae))
	assert.True(t, errors.As(errWrongPass, &ae))
}

func TestLogin_RepositoryError(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, errors.New("connection refused"))

	resp, err := uc.Login(ctx, auth.LoginRequest{
		Email:    "harold@test.com",
		Password: "MiPass123!",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)

	var ie *apperrors.InternalError
	assert.True(t, errors.As(err, &ie))
}

// ==================== SEED TESTS ====================

func TestSeed_ForbiddenOutsideDevelopment(t *testing.T) {
	uc, _ := setupAuthUsecase(t, false)

	resp, err := uc.Seed(context.Background())

	assert.Error(t, err)
	assert.Nil(t, resp)

	var fe *apperrors.ForbiddenError
	assert.True(t, errors.As(err, &fe))
}

func TestSeed_CreatesFixedAccount(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Harold" &&
			u.Email == "harold@test.com" &&
			u.PasswordHash == hash.Digest("MiPass123!")
	})).Return(int64(1), nil)

	resp, err := uc.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "seed user created", resp.Message)
	assert.Equal(t, "harold@test.com", resp.Email)
	assert.Equal(t, "MiPass123!", resp.Password)
	mockRepo.AssertExpectations(t)
}

func TestSeed_Idempotent(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Email: "harold@test.com"}
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(existing, nil)

	resp, err := uc.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "seed user already exists", resp.Message)
	assert.Empty(t, resp.Email)
	mockRepo.AssertExpectations(t)
}

// TestSeedThenLogin covers the canonical development flow: seed the account,
// then log in with the published credentials.
func TestSeedThenLogin(t *testing.T) {
	uc, mockRepo := setupAuthUsecase(t, true)
	ctx := context.Background()

	seeded := &domain.User{
		ID:           1,
		Name:         "Harold",
		Email:        "harold@test.com",
		PasswordHash: hash.Digest("MiPass123!"),
	}

	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(nil, nil).Once()
	mockRepo.On("Create", ctx, mock.Anything).Return(int64(1), nil).Once()
	mockRepo.On("GetByEmail", ctx, "harold@test.com").Return(seeded, nil).Once()

	seedResp, err := uc.Seed(ctx)
	assert.NoError(t, err)

	loginResp, err := uc.Login(ctx, auth.LoginRequest{
		Email:    seedResp.Email,
		Password: seedResp.Password,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResp.Token)
	mockRepo.AssertExpectations(t)
}
