package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"authbase/internal/apperror"
	"authbase/internal/auth"
	"authbase/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		email        string
		password     string
		setupMock    func(*MockUserRepository)
		expectedKind apperror.Kind
		wantErr      bool
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "Alice@Example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "duplicate email",
			username: "alice2",
			email:    "alice@example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(apperror.NewConflict("email already registered", nil))
			},
			expectedKind: apperror.Conflict,
			wantErr:      true,
		},
		{
			name:     "duplicate username",
			username: "alice",
			email:    "other@example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(apperror.NewConflict("username already taken", nil))
			},
			expectedKind: apperror.Conflict,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, newTestJWTService())
			user, token, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, tt.expectedKind))
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, "alice@example.com", user.Email) // lowercased at rest
				assert.True(t, user.Active)

				// The stored hash is never the plaintext and verifies against it.
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Secur3Pass!"), bcryptCost)
	require.NoError(t, err)

	activeUser := func() *model.User {
		return &model.User{
			ID:           uuid.New(),
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: string(hashedPassword),
			Active:       true,
		}
	}

	tests := []struct {
		name         string
		email        string
		password     string
		setupMock    func(*MockUserRepository)
		expectedKind apperror.Kind
		expectedMsg  string
		wantErr      bool
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(activeUser(), nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").
					Return(nil, apperror.NewNotFound("user not found", nil))
			},
			expectedKind: apperror.Unauthenticated,
			expectedMsg:  "incorrect email or password",
			wantErr:      true,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(activeUser(), nil)
			},
			expectedKind: apperror.Unauthenticated,
			expectedMsg:  "incorrect email or password",
			wantErr:      true,
		},
		{
			name:     "deactivated account",
			email:    "alice@example.com",
			password: "Secur3Pass!",
			setupMock: func(m *MockUserRepository) {
				user := activeUser()
				user.Active = false
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
			},
			expectedKind: apperror.Forbidden,
			expectedMsg:  "account deactivated",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, newTestJWTService())
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.FromError(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedKind, appErr.Kind)
				assert.Equal(t, tt.expectedMsg, appErr.Message)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, "alice@example.com", user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_NoEnumeration(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Secur3Pass!"), bcryptCost)
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: string(hashedPassword),
		Active:       true,
	}, nil)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperror.NewNotFound("user not found", nil))

	svc := NewAuthService(mockRepo, newTestJWTService())

	_, _, wrongPass := svc.Login(context.Background(), "alice@example.com", "bad-password")
	_, _, noUser := svc.Login(context.Background(), "ghost@example.com", "bad-password")

	wrongPassErr, ok := apperror.FromError(wrongPass)
	require.True(t, ok)
	noUserErr, ok := apperror.FromError(noUser)
	require.True(t, ok)

	assert.Equal(t, wrongPassErr.Kind, noUserErr.Kind)
	assert.Equal(t, wrongPassErr.Message, noUserErr.Message)
	assert.Equal(t, wrongPassErr.StatusCode(), noUserErr.StatusCode())
}
