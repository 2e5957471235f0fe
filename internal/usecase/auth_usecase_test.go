package usecase_test

import (
	"context"
	"testing"

	"uniket/internal/config"
	"uniket/internal/domain/model"
	"uniket/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type validatorStub struct {
	registerErr error
	loginErr    error
}

func (v *validatorStub) ValidateRegister(ctx context.Context, email string, password string) error {
	return v.registerErr
}

func (v *validatorStub) ValidateLogin(ctx context.Context, email string, password string) error {
	return v.loginErr
}

func authConfig() config.Config {
	cfg := fraudConfig()
	cfg.JWTSecret = "test-secret"
	return cfg
}

func newAuthUsecase(users *UserRepoMock, attempts *AttemptRepoMock, v usecase.AuthValidator) *usecase.AuthUsecase {
	fraudUC := usecase.NewFraudUsecase(authConfig(), new(OrderRepoMock), new(BidRepoMock), attempts, users, &SinkSpy{})
	return usecase.NewAuthUsecase(authConfig(), users, attempts, fraudUC, v)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Register_DefaultsToCustomerRole(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users, new(AttemptRepoMock), &validatorStub{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//ADMIN指定は無視されてCUSTOMERになる。パスワードは平文で保存されない
		return u.Role == model.RoleCustomer && u.IsActive && u.PasswordHash != "password123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 2
	}).Return(nil)

	res, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email: "taro@example.com", Password: "password123", Name: "Taro", Role: "ADMIN",
	})
	assert.NoError(t, err)
	assert.Equal(t, "USER", res.User.Role)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_VendorRoleAllowed(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users, new(AttemptRepoMock), &validatorStub{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleVendor
	})).Return(nil)

	res, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email: "shop@example.com", Password: "password123", Name: "Shop", Role: "VENDOR",
	})
	assert.NoError(t, err)
	assert.Equal(t, "VENDOR", res.User.Role)
}

func TestAuthUsecase_Login_UnknownEmailStillRecordsAttempt(t *testing.T) {
	users := new(UserRepoMock)
	attempts := new(AttemptRepoMock)
	uc := newAuthUsecase(users, attempts, &validatorStub{})

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return((*model.User)(nil), nil)
	attempts.On("Create", mock.Anything, mock.MatchedBy(func(a model.LoginAttempt) bool {
		return a.UserID == nil && a.Email == "ghost@example.com" && !a.Success
	})).Return(nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "ghost@example.com", Password: "whatever123",
	}, "10.0.0.9")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, he.Status)
	attempts.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPasswordTriggersFraudChecks(t *testing.T) {
	users := new(UserRepoMock)
	attempts := new(AttemptRepoMock)
	uc := newAuthUsecase(users, attempts, &validatorStub{})

	users.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(&model.User{ID: 2, Email: "taro@example.com", PasswordHash: hashOf(t, "correct-pass"), IsActive: true}, nil)
	attempts.On("Create", mock.Anything, mock.Anything).Return(nil)

	//失敗契機でしきい値チェックが走る
	attempts.On("CountFailedSince", mock.Anything, int64(2), mock.Anything).Return(int64(1), nil)
	attempts.On("CountDistinctUsersByIPSince", mock.Anything, "10.0.0.9", mock.Anything).Return(int64(1), nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "wrong-pass",
	}, "10.0.0.9")

	assertErrContains(t, err, "invalid credentials")
	attempts.AssertExpectations(t)
}

func TestAuthUsecase_Login_DisabledAccount(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users, new(AttemptRepoMock), &validatorStub{})

	users.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(&model.User{ID: 2, PasswordHash: hashOf(t, "correct-pass"), IsActive: false}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "correct-pass",
	}, "10.0.0.9")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestAuthUsecase_Login_SuccessIssuesHS256Token(t *testing.T) {
	users := new(UserRepoMock)
	attempts := new(AttemptRepoMock)
	uc := newAuthUsecase(users, attempts, &validatorStub{})

	users.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(&model.User{ID: 2, Email: "taro@example.com", Role: model.RoleCustomer, PasswordHash: hashOf(t, "correct-pass"), IsActive: true}, nil)
	attempts.On("Create", mock.Anything, mock.MatchedBy(func(a model.LoginAttempt) bool {
		return a.Success
	})).Return(nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	res, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "correct-pass",
	}, "10.0.0.9")
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token.AccessToken)
	assert.Equal(t, 86400, res.Token.ExpiresIn)

	//署名と中身を検証する
	parsed, err := jwt.Parse(res.Token.AccessToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(2), claims["sub"])
	assert.Equal(t, "USER", claims["role"])
}

func TestAuthUsecase_Me_DisabledAccount(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users, new(AttemptRepoMock), &validatorStub{})

	users.On("FindByID", mock.Anything, int64(2)).
		Return(&model.User{ID: 2, IsActive: false}, nil)

	_, err := uc.Me(context.Background(), 2)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}
