package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/identity"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateSubscriptionPlan(ctx context.Context, userID uuid.UUID, planName string) error {
	args := m.Called(ctx, userID, planName)
	return args.Error(0)
}

// capturingPublisher records published events
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "event-saas-test",
		MaxRefreshCount:        3,
	})
}

type authFixture struct {
	users     *MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	publisher *capturingPublisher
	service   *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     new(MockUserRepository),
		jwt:       newTestJWTService(),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		publisher: &capturingPublisher{},
	}
	f.service = NewAuthService(f.users, f.jwt, f.blacklist, f.publisher, nil)
	return f
}

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "Planner@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Nadia",
		BusinessName:    "Dhaka Weddings",
		BusinessType:    "Wedding Planner",
		City:            "Dhaka",
	}
}

func newTestUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("planner@example.com", password, identity.Profile{
		BusinessName: "Dhaka Weddings",
		BusinessType: "Wedding Planner",
		City:         "Dhaka",
	})
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	assert.Equal(t, shared.ErrValidation.Code, domainErr.Code)
	return domainErr.Fields
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("ExistsByEmail", ctx, "Planner@Example.com").Return(false, nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := f.service.Signup(ctx, validSignup())
	require.NoError(t, err)

	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, "planner@example.com", resp.User.Email)
	assert.Equal(t, "planner@example.com", resp.User.Username)
	assert.Equal(t, identity.FreePlanName, resp.User.SubscriptionPlan)
	assert.Equal(t, "Bangladesh", resp.User.Country)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.False(t, claims.IsStaff)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, identity.EventTypeUserRegistered, f.publisher.events[0].EventType())
	f.users.AssertExpectations(t)
}

func TestAuthService_Signup_PasswordMismatch(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	req := validSignup()
	req.ConfirmPassword = "secret124"
	_, err := f.service.Signup(context.Background(), req)

	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"Passwords don't match"}, fields["confirm_password"])
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.service.Signup(context.Background(), validSignup())

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_CollectsAllFieldErrors(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	req := validSignup()
	req.Password = "onlyletters"
	req.ConfirmPassword = "different"
	req.BusinessType = "Florist"
	_, err := f.service.Signup(context.Background(), req)

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "confirm_password")
	assert.Contains(t, fields, "business_type")
}

func TestAuthService_Signup_CreateRaceReportedOnEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	f.users.On("Create", mock.Anything, mock.Anything).
		Return(shared.NewDomainError(shared.ErrAlreadyExists.Code, "A user with this email already exists"))

	_, err := f.service.Signup(context.Background(), validSignup())

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	assert.Empty(t, f.publisher.events)
}

func TestAuthService_Signin(t *testing.T) {
	f := newAuthFixture()
	user := newTestUser(t, "secret123")
	f.users.On("FindByEmail", mock.Anything, "planner@example.com").Return(user, nil)
	f.users.On("Update", mock.Anything, user).Return(nil)

	resp, err := f.service.Signin(context.Background(), SigninRequest{Email: "planner@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.Equal(t, "Bearer", resp.TokenType)
	f.users.AssertExpectations(t)
}

func TestAuthService_Signin_Failures(t *testing.T) {
	disabled := newTestUser(t, "secret123")
	disabled.IsActive = false

	tests := []struct {
		name     string
		setup    func(*MockUserRepository)
		password string
		wantMsg  string
	}{
		{
			name: "unknown email",
			setup: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.NotFound("User"))
			},
			password: "secret123",
			wantMsg:  "Invalid credentials",
		},
		{
			name: "wrong password",
			setup: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, mock.Anything).Return(newTestUser(t, "secret123"), nil)
			},
			password: "secret999",
			wantMsg:  "Invalid credentials",
		},
		{
			name: "disabled account",
			setup: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, mock.Anything).Return(disabled, nil)
			},
			password: "secret123",
			wantMsg:  "User account is disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setup(f.users)

			_, err := f.service.Signin(context.Background(), SigninRequest{Email: "planner@example.com", Password: tt.password})

			fields := fieldErrors(t, err)
			assert.Equal(t, []string{tt.wantMsg}, fields[nonFieldErrors])
			f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Signin_StoreFailureIsNotCredentialsError(t *testing.T) {
	f := newAuthFixture()
	storeErr := errors.New("connection refused")
	f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, storeErr)

	_, err := f.service.Signin(context.Background(), SigninRequest{Email: "planner@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, storeErr)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t, "secret123")
	user.IsStaff = true
	f.users.On("FindByID", ctx, user.ID).Return(user, nil)

	pair, err := f.jwt.GenerateTokenPair(tokenInput(user))
	require.NoError(t, err)

	resp, err := f.service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	access, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, access.IsStaff)

	newRefresh, err := f.jwt.ValidateRefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, newRefresh.RefreshCount)

	// the old refresh token cannot be replayed
	_, err = f.service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Contains(t, err.Error(), "revoked")
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.service.Refresh(context.Background(), RefreshRequest{RefreshToken: "not-a-token"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("access token presented as refresh", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, "secret123")
		pair, err := f.jwt.GenerateTokenPair(tokenInput(user))
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("disabled user", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, "secret123")
		user.IsActive = false
		f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		pair, err := f.jwt.GenerateTokenPair(tokenInput(user))
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t, "secret123")
	pair, err := f.jwt.GenerateTokenPair(tokenInput(user))
	require.NoError(t, err)
	access, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, access, LogoutRequest{RefreshToken: pair.RefreshToken}))

	revoked, err := f.blacklist.IsRevoked(ctx, access)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = f.blacklist.IsRevoked(ctx, refresh)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_RefreshTokenOfAnotherUser(t *testing.T) {
	f := newAuthFixture()
	mine, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Email: "a@example.com"})
	require.NoError(t, err)
	theirs, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Email: "b@example.com"})
	require.NoError(t, err)
	access, err := f.jwt.ValidateAccessToken(mine.AccessToken)
	require.NoError(t, err)

	err = f.service.Logout(context.Background(), access, LogoutRequest{RefreshToken: theirs.RefreshToken})

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "refresh_token")
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t, "secret123")
	f.users.On("FindByID", ctx, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	city := "Chattogram"
	newsletter := true
	resp, err := f.service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{City: &city, SubscribeNewsletter: &newsletter})
	require.NoError(t, err)

	assert.Equal(t, "Chattogram", resp.City)
	assert.True(t, resp.SubscribeNewsletter)
	assert.Equal(t, "Dhaka Weddings", resp.BusinessName)
	assert.Equal(t, identity.FreePlanName, resp.SubscriptionPlan)
	f.users.AssertExpectations(t)
}

func TestAuthService_UpdateProfile_Invalid(t *testing.T) {
	f := newAuthFixture()
	user := newTestUser(t, "secret123")
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	bt := "Florist"
	_, err := f.service.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{BusinessType: &bt})

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "business_type")
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	f := newAuthFixture()
	id := uuid.New()
	f.users.On("FindByID", mock.Anything, id).Return(nil, shared.NotFound("User"))

	_, err := f.service.GetProfile(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t, "secret123")
	f.users.On("FindByID", ctx, user.ID).Return(user, nil)
	f.users.On("Update", ctx, user).Return(nil)

	pair, err := f.jwt.GenerateTokenPair(tokenInput(user))
	require.NoError(t, err)
	access, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword:     "secret123",
		NewPassword:     "newsecret456",
		ConfirmPassword: "newsecret456",
	})
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("newsecret456"))
	revoked, err := f.blacklist.IsRevoked(ctx, access)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	f := newAuthFixture()
	user := newTestUser(t, "secret123")
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := f.service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword:     "nope12345",
		NewPassword:     "newsecret456",
		ConfirmPassword: "newsecret456",
	})

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "old_password")
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
