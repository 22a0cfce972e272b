package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSessionTTL = 24 * time.Hour

// newTestUserService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestUserService(t *testing.T) (*userService, *mocks.MockUserRepository, *mocks.MockSessionStore) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockUserRepository(ctrl)
	sessionsMock := mocks.NewMockSessionStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewUserService(repoMock, sessionsMock, logger, testSessionTTL)
	return service.(*userService), repoMock, sessionsMock
}

func TestRegister_Success(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	user := &models.User{
		Email:     "user@example.com",
		FirstName: "Анна",
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			u.ID = 7
			return nil
		}).Times(1)
	sessionsMock.EXPECT().
		Create(ctx, gomock.Any(), int64(7), testSessionTTL).
		Return(nil).
		Times(1)

	// Действие
	token, err := service.Register(ctx, user, "secret123")

	// Проверки
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 случайных байта в hex
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestRegister_EmailTaken(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	user := &models.User{Email: "user@example.com"}

	// Ожидания
	// Дубликат email отклоняется репозиторием, сессия не открывается
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(ErrEmailTaken).Times(1)
	sessionsMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	token, err := service.Register(ctx, user, "secret123")

	// Проверки
	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, "user@example.com").Return(storedUser, nil).Times(1)
	repoMock.EXPECT().UpdateLastLogin(ctx, int64(7)).Return(nil).Times(1)
	sessionsMock.EXPECT().Create(ctx, gomock.Any(), int64(7), testSessionTTL).Return(nil).Times(1)

	// Действие
	user, token, err := service.Login(ctx, "user@example.com", "secret123")

	// Проверки
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.EqualValues(t, 7, user.ID)
	assert.False(t, user.LastLogin.IsZero())
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	// Несуществующий email дает тот же ответ, что и неверный пароль
	repoMock.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, ErrNotFound).Times(1)
	sessionsMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	user, token, err := service.Login(ctx, "ghost@example.com", "secret123")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, "user@example.com").Return(storedUser, nil).Times(1)
	sessionsMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	user, token, err := service.Login(ctx, "user@example.com", "wrong-password")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, "user@example.com").Return(storedUser, nil).Times(1)
	sessionsMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	user, token, err := service.Login(ctx, "user@example.com", "secret123")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	// Подготовка
	service, repoMock, sessionsMock := newTestUserService(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           7,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	// Ожидания
	repoMock.EXPECT().GetByEmail(ctx, "user@example.com").Return(storedUser, nil).Times(1)
	repoMock.EXPECT().UpdateLastLogin(ctx, int64(7)).Return(assert.AnError).Times(1)
	sessionsMock.EXPECT().Create(ctx, gomock.Any(), int64(7), testSessionTTL).Return(nil).Times(1)

	// Действие
	user, token, err := service.Login(ctx, "user@example.com", "secret123")

	// Проверки
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
}

func TestLogout_Success(t *testing.T) {
	// Подготовка
	service, _, sessionsMock := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	sessionsMock.EXPECT().Delete(ctx, "some-token").Return(nil).Times(1)

	// Действие
	err := service.Logout(ctx, "some-token")

	// Проверки
	require.NoError(t, err)
}

func TestLogout_UnknownToken(t *testing.T) {
	// Подготовка
	service, _, sessionsMock := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	sessionsMock.EXPECT().Delete(ctx, "stale-token").Return(ErrNotFound).Times(1)

	// Действие
	err := service.Logout(ctx, "stale-token")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_Success(t *testing.T) {
	// Подготовка
	service, _, sessionsMock := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	sessionsMock.EXPECT().Get(ctx, "valid-token").Return(int64(7), nil).Times(1)

	// Действие
	userID, err := service.Authenticate(ctx, "valid-token")

	// Проверки
	require.NoError(t, err)
	assert.EqualValues(t, 7, userID)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	// Подготовка
	service, _, sessionsMock := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	// Истекший токен Redis удаляет сам, для сервиса это "not found"
	sessionsMock.EXPECT().Get(ctx, "expired-token").Return(int64(0), ErrNotFound).Times(1)

	// Действие
	userID, err := service.Authenticate(ctx, "expired-token")

	// Проверки
	require.Error(t, err)
	assert.Zero(t, userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfile_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestUserService(t)
	ctx := context.Background()
	expectedUser := &models.User{ID: 7, Email: "user@example.com"}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7)).Return(expectedUser, nil).Times(1)

	// Действие
	user, err := service.GetProfile(ctx, 7)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedUser, user)
}

func TestUpdateProfile_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestUserService(t)
	ctx := context.Background()
	existing := &models.User{
		ID:        7,
		Email:     "user@example.com",
		FirstName: "Анна",
		City:      "Delhi",
	}
	patch := &models.User{
		ID:        7,
		FirstName: "Анна",
		LastName:  "Петрова",
		Pincode:   "110001",
		City:      "New Delhi",
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	updated, err := service.UpdateProfile(ctx, patch)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Петрова", updated.LastName)
	assert.Equal(t, "110001", updated.Pincode)
	assert.Equal(t, "New Delhi", updated.City)
	// Email не входит в обновляемые поля профиля
	assert.Equal(t, "user@example.com", updated.Email)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7)).Return(nil, ErrNotFound).Times(1)

	// Действие
	updated, err := service.UpdateProfile(ctx, &models.User{ID: 7})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrNotFound)
}
