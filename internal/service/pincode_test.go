package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestPincodeService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestPincodeService(t *testing.T, providerCount int) (*pincodeService, *mocks.MockPincodeRepository, []*mocks.MockPincodeProvider) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockPincodeRepository(ctrl)

	providerMocks := make([]*mocks.MockPincodeProvider, 0, providerCount)
	providers := make([]PincodeProvider, 0, providerCount)
	for i := 0; i < providerCount; i++ {
		p := mocks.NewMockPincodeProvider(ctrl)
		providerMocks = append(providerMocks, p)
		providers = append(providers, p)
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewPincodeService(repoMock, providers, logger, nil)
	return service.(*pincodeService), repoMock, providerMocks
}

func TestPincodeLookup_LocalHit(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 1)
	ctx := context.Background()
	expected := &models.PincodeData{
		Pincode: "110001",
		City:    "New Delhi",
		State:   "Delhi",
		Country: "India",
	}

	// Ожидания
	// Локальное попадание не обращается к внешнему провайдеру
	repoMock.EXPECT().GetByPincode(ctx, "110001").Return(expected, nil).Times(1)
	providerMocks[0].EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	data, err := service.Lookup(ctx, "110001")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestPincodeLookup_ExternalFallbackAndPersist(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 1)
	ctx := context.Background()
	external := &models.PincodeData{
		Pincode: "560001",
		City:    "Bengaluru",
		State:   "Karnataka",
		Country: "India",
	}

	// Ожидания
	// Локальный промах, внешний ответ сохраняется в справочник
	gomock.InOrder(
		repoMock.EXPECT().GetByPincode(ctx, "560001").Return(nil, ErrNotFound),
		providerMocks[0].EXPECT().Lookup(ctx, "560001").Return(external, nil),
		repoMock.EXPECT().Upsert(ctx, external).Return(nil),
	)

	// Действие
	data, err := service.Lookup(ctx, "560001")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, external, data)
}

func TestPincodeLookup_UpsertFailureIsNotFatal(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 1)
	ctx := context.Background()
	external := &models.PincodeData{
		Pincode: "560001",
		City:    "Bengaluru",
		State:   "Karnataka",
		Country: "India",
	}

	// Ожидания
	repoMock.EXPECT().GetByPincode(ctx, "560001").Return(nil, ErrNotFound).Times(1)
	providerMocks[0].EXPECT().Lookup(ctx, "560001").Return(external, nil).Times(1)
	repoMock.EXPECT().Upsert(ctx, external).Return(assert.AnError).Times(1)

	// Действие
	data, err := service.Lookup(ctx, "560001")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, external, data)
}

func TestPincodeLookup_ProviderFailureFallsThrough(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 2)
	ctx := context.Background()
	external := &models.PincodeData{
		Pincode: "400001",
		City:    "Mumbai",
		State:   "Maharashtra",
		Country: "India",
	}

	// Ожидания
	// Отказ первого провайдера приводит к опросу следующего
	repoMock.EXPECT().GetByPincode(ctx, "400001").Return(nil, ErrNotFound).Times(1)
	providerMocks[0].EXPECT().Lookup(ctx, "400001").Return(nil, assert.AnError).Times(1)
	providerMocks[1].EXPECT().Lookup(ctx, "400001").Return(external, nil).Times(1)
	repoMock.EXPECT().Upsert(ctx, external).Return(nil).Times(1)

	// Действие
	data, err := service.Lookup(ctx, "400001")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, external, data)
}

func TestPincodeLookup_AllProvidersFail(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 2)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByPincode(ctx, "000000").Return(nil, ErrNotFound).Times(1)
	providerMocks[0].EXPECT().Lookup(ctx, "000000").Return(nil, assert.AnError).Times(1)
	providerMocks[1].EXPECT().Lookup(ctx, "000000").Return(nil, assert.AnError).Times(1)

	// Действие
	data, err := service.Lookup(ctx, "000000")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPincodeLookup_NoProviders(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestPincodeService(t, 0)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByPincode(ctx, "999999").Return(nil, ErrNotFound).Times(1)

	// Действие
	data, err := service.Lookup(ctx, "999999")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPincodeLookup_LocalQueryError(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 1)
	ctx := context.Background()

	// Ожидания
	// Отказ бд не маскируется обращением к провайдерам
	repoMock.EXPECT().GetByPincode(ctx, "110001").Return(nil, assert.AnError).Times(1)
	providerMocks[0].EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	data, err := service.Lookup(ctx, "110001")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, data)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPincodeLookup_SecondLookupServedLocally(t *testing.T) {
	// Подготовка
	service, repoMock, providerMocks := newTestPincodeService(t, 1)
	ctx := context.Background()
	external := &models.PincodeData{
		Pincode: "700001",
		City:    "Kolkata",
		State:   "West Bengal",
		Country: "India",
	}

	// Ожидания
	// Первый запрос уходит к провайдеру и кэшируется, второй обслуживается локально
	gomock.InOrder(
		repoMock.EXPECT().GetByPincode(ctx, "700001").Return(nil, ErrNotFound),
		providerMocks[0].EXPECT().Lookup(ctx, "700001").Return(external, nil),
		repoMock.EXPECT().Upsert(ctx, external).Return(nil),
		repoMock.EXPECT().GetByPincode(ctx, "700001").Return(external, nil),
	)

	// Действие
	first, err := service.Lookup(ctx, "700001")
	require.NoError(t, err)
	second, err := service.Lookup(ctx, "700001")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, external, first)
	assert.Equal(t, external, second)
}
