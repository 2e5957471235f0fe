package validator

import (
	"context"
	"testing"

	"uniket/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestValidateRegister_RequiredFields(t *testing.T) {
	v := NewAuthValidator(new(userRepoMock))

	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "taro@example.com", ""), ErrInvalidInput)
}

func TestValidateRegister_EmailFormat(t *testing.T) {
	v := NewAuthValidator(new(userRepoMock))

	for _, email := range []string{"not-an-email", "a@b", "a b@example.com", "@example.com"} {
		assert.ErrorIs(t, v.ValidateRegister(context.Background(), email, "password123"), ErrInvalidInput, email)
	}
}

func TestValidateRegister_PasswordTooShort(t *testing.T) {
	v := NewAuthValidator(new(userRepoMock))

	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "taro@example.com", "short12"), ErrInvalidInput)
}

func TestValidateRegister_DuplicateEmail(t *testing.T) {
	users := new(userRepoMock)
	v := NewAuthValidator(users)

	users.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(&model.User{ID: 2, Email: "taro@example.com"}, nil)

	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "taro@example.com", "password123"), ErrEmailAlreadyUsed)
}

func TestValidateRegister_OK(t *testing.T) {
	users := new(userRepoMock)
	v := NewAuthValidator(users)

	users.On("FindByEmail", mock.Anything, "taro@example.com").Return((*model.User)(nil), nil)

	assert.NoError(t, v.ValidateRegister(context.Background(), " taro@example.com ", "password123"))
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator(new(userRepoMock))

	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "password123"), ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "bad-email", "password123"), ErrInvalidInput)
	//ログイン側はパスワード長を見ない（既存ユーザーの短いパスワードを締め出さない）
	assert.NoError(t, v.ValidateLogin(context.Background(), "taro@example.com", "short"))
}
