package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockResetNotifier struct {
	mock.Mock
}

func (m *MockResetNotifier) PasswordReset(to, link string) {
	m.Called(to, link)
}

func TestIdentityService_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	service := NewIdentityService(repository.NewMemoryStore().Users(), nil, "http://localhost:3000")

	created, err := service.Signup(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)

	account, err := service.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)

	_, err = service.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = service.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIdentityService_SignupDuplicate(t *testing.T) {
	ctx := context.Background()
	service := NewIdentityService(repository.NewMemoryStore().Users(), nil, "")

	_, err := service.Signup(ctx, "ada@example.com", "one")
	require.NoError(t, err)

	_, err = service.Signup(ctx, "ada@example.com", "two")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIdentityService_SignupStoresBcryptHash(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewIdentityService(mockRepo, nil, "")

	var stored *domain.User
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.User)
			stored.ID = 7
		}).Return(nil).Once()

	account, err := service.Signup(context.Background(), "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)

	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
	assert.False(t, stored.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestIdentityService_SignupValidation(t *testing.T) {
	service := NewIdentityService(&MockUserRepository{}, nil, "")

	_, err := service.Signup(context.Background(), "", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = service.Signup(context.Background(), "a@example.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestIdentityService_SignupStorageFailureIsOpaque(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewIdentityService(mockRepo, nil, "")

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset by peer")).Once()

	_, err := service.Signup(context.Background(), "a@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestIdentityService_LoginStorageFailure(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewIdentityService(mockRepo, nil, "")

	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(nil, errors.New("timeout")).Once()

	_, err := service.Login(context.Background(), "a@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestIdentityService_RequestPasswordReset_KnownEmail(t *testing.T) {
	mockRepo := &MockUserRepository{}
	notifier := &MockResetNotifier{}
	service := NewIdentityService(mockRepo, notifier, "https://lastchanceair.example/")
	service.newToken = func() string { return "tok-123" }

	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.User{ID: 1, Email: "a@example.com"}, nil).Once()
	notifier.On("PasswordReset", "a@example.com", "https://lastchanceair.example/reset?token=tok-123").Once()

	assert.NoError(t, service.RequestPasswordReset(context.Background(), "a@example.com"))
	mockRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestIdentityService_RequestPasswordReset_UnknownEmailLooksTheSame(t *testing.T) {
	mockRepo := &MockUserRepository{}
	notifier := &MockResetNotifier{}
	service := NewIdentityService(mockRepo, notifier, "")

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound).Once()
	mockRepo.On("GetByEmail", mock.Anything, "broken@example.com").Return(nil, errors.New("db down")).Once()

	assert.NoError(t, service.RequestPasswordReset(context.Background(), "ghost@example.com"))
	assert.NoError(t, service.RequestPasswordReset(context.Background(), "broken@example.com"))
	notifier.AssertNotCalled(t, "PasswordReset", mock.Anything, mock.Anything)
}

func TestIdentityService_RequestPasswordReset_EmptyEmail(t *testing.T) {
	service := NewIdentityService(&MockUserRepository{}, nil, "")
	assert.ErrorIs(t, service.RequestPasswordReset(context.Background(), ""), domain.ErrInvalidRequest)
}
