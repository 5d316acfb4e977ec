package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"MusicHub/core/apperror"
	"MusicHub/core/auth"
	"MusicHub/model"
	"MusicHub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestService() (*Service, repository.UserRepository, *auth.TokenCodec) {
	users := repository.NewMemoryUserRepository()
	codec := auth.NewTokenCodec("test-secret", time.Hour)
	return NewService(users, codec), users, codec
}

func TestRegister_ThenDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()

	u, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "pw123", u.PasswordHash)

	_, err = svc.Register(ctx, "alice-again", "a@x.com", "other")
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, MsgUserExists, apperror.Message(err))

	stored, err := users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username, "first registration must win")
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()
	cases := [][3]string{
		{"", "a@x.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@x.com", ""},
	}
	for _, c := range cases {
		_, err := svc.Register(context.Background(), c[0], c[1], c[2])
		assert.True(t, apperror.Is(err, apperror.KindValidation), "case %v", c)
		assert.Equal(t, MsgFieldsRequired, apperror.Message(err))
	}
}

func TestRegister_UniqueIndexRace(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUser)

	svc := NewService(repo, auth.NewTokenCodec("k", time.Hour))
	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw")
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	repo.AssertExpectations(t)
}

func TestRegister_StoreFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection reset"))

	svc := NewService(repo, auth.NewTokenCodec("k", time.Hour))
	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw")
	assert.True(t, apperror.Is(err, apperror.KindServer))
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, codec := newTestService()

	u, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	sub, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)

	token, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.Empty(t, token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	assert.Equal(t, MsgInvalidCredentials, apperror.Message(err))

	_, err = svc.Login(ctx, "nobody@x.com", "pw123")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, MsgUserNotFound, apperror.Message(err))

	_, err = svc.Login(ctx, "", "pw123")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	u, err := svc.Register(ctx, "bob", "b@x.com", "pw")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	_, err = svc.Profile(ctx, "does-not-exist")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
