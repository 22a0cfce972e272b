package service

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/rmg-labs/incident-service/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewIncidentService(repoMock, logger, nil)
	return service.(*incidentService), repoMock
}

func TestCreateIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		ReporterID:   7,
		ReporterType: models.ReporterEnterprise,
		Details:      "Сломан шлюз платежей",
	}
	idPattern := regexp.MustCompile(fmt.Sprintf(`^RMG\d{5}%d$`, time.Now().Year()))

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			// Симулируем, что БД присвоила числовой id
			inc.ID = 42
			return nil
		}).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, incident.Status)
	assert.Equal(t, models.PriorityMedium, incident.Priority)
	assert.Regexp(t, idPattern, incident.IncidentID)
	assert.EqualValues(t, 42, incident.ID)
}

func TestCreateIncident_KeepsRequestedPriority(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		ReporterID:   7,
		ReporterType: models.ReporterGovernment,
		Details:      "Отказ резервного канала",
		Priority:     models.PriorityHigh,
	}

	// Ожидания
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, incident.Priority)
}

func TestCreateIncident_RetriesOnIDCollision(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		ReporterID:   7,
		ReporterType: models.ReporterEnterprise,
		Details:      "Дубликат идентификатора",
	}

	var generated []string

	// Ожидания
	// 1. Первая вставка упирается в уникальный индекс
	// 2. Повторная попытка с новым идентификатором проходит
	gomock.InOrder(
		repoMock.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, inc *models.Incident) error {
				generated = append(generated, inc.IncidentID)
				return ErrIncidentIDTaken
			}).Times(1),
		repoMock.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, inc *models.Incident) error {
				generated = append(generated, inc.IncidentID)
				return nil
			}).Times(1),
	)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	require.Len(t, generated, 2)
}

func TestCreateIncident_IDSpaceExhausted(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.Incident{
		ReporterID:   7,
		ReporterType: models.ReporterEnterprise,
		Details:      "Пространство идентификаторов исчерпано",
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		Return(ErrIncidentIDTaken).
		Times(incidentIDMaxRetries)

	// Действие
	err := service.CreateIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncidentIDExhausted)
}

func TestGetIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncident := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Status:     models.StatusOpen,
	}

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, int64(7), int64(42)).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, 7, 42)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	// Чужой инцидент неотличим от несуществующего
	repoMock.EXPECT().
		GetByID(ctx, int64(7), int64(42)).
		Return(nil, ErrNotFound).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, 7, 42)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Details:    "Старое описание",
		Priority:   models.PriorityMedium,
		Status:     models.StatusOpen,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	updated, err := service.UpdateIncident(ctx, 7, 42, "Новое описание", models.PriorityHigh, models.StatusInProgress)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Новое описание", updated.Details)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestUpdateIncident_ClosedIsImmutable(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Details:    "Закрытый инцидент",
		Status:     models.StatusClosed,
	}

	// Ожидания
	// Запрет проверяется по текущему состоянию в бд, Update не вызывается
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	updated, err := service.UpdateIncident(ctx, 7, 42, "Попытка правки", models.PriorityLow, models.StatusOpen)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrIncidentClosed)
	assert.Equal(t, "Закрытый инцидент", existing.Details)
}

func TestUpdateIncident_CloseViaStatusUpdate(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Details:    "Инцидент в работе",
		Priority:   models.PriorityHigh,
		Status:     models.StatusInProgress,
	}

	// Ожидания
	// Первое обновление переводит инцидент в CLOSED, второе отклоняется
	gomock.InOrder(
		repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil),
		repoMock.EXPECT().Update(ctx, gomock.Any()).Return(nil),
		repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil),
	)

	// Действие
	closed, err := service.UpdateIncident(ctx, 7, 42, "Причина устранена", models.PriorityHigh, models.StatusClosed)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, closed.Status)
	assert.False(t, closed.IsEditable())

	// Действие: повторная правка уже закрытого инцидента
	reopened, err := service.UpdateIncident(ctx, 7, 42, "Попытка переоткрытия", models.PriorityLow, models.StatusOpen)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, reopened)
	assert.ErrorIs(t, err, ErrIncidentClosed)
}

func TestUpdateIncident_ConcurrentCloseDetected(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Status:     models.StatusOpen,
	}

	// Ожидания
	// Между чтением и записью инцидент закрыт параллельным запросом,
	// репозиторий сообщает об этом на записи
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(ErrIncidentClosed).Times(1)

	// Действие
	updated, err := service.UpdateIncident(ctx, 7, 42, "x", models.PriorityLow, models.StatusOpen)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrIncidentClosed)
}

func TestUpdateIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(nil, ErrNotFound).Times(1)

	// Действие
	updated, err := service.UpdateIncident(ctx, 7, 42, "x", models.PriorityLow, models.StatusOpen)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Delete(ctx, int64(7), int64(42)).Return(nil).Times(1)

	// Действие
	err := service.DeleteIncident(ctx, 7, 42)

	// Проверки
	require.NoError(t, err)
}

func TestDeleteIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().Delete(ctx, int64(7), int64(42)).Return(ErrNotFound).Times(1)

	// Действие
	err := service.DeleteIncident(ctx, 7, 42)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListIncidents_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncidents := []*models.Incident{
		{ID: 1, ReporterID: 7},
		{ID: 2, ReporterID: 7},
	}

	// Ожидания
	repoMock.EXPECT().
		ListByReporter(ctx, int64(7), 1, 10).
		Return(expectedIncidents, nil).
		Times(1)

	// Действие
	incidents, err := service.ListIncidents(ctx, 7, 1, 10)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncidents, incidents)
}

func TestListIncidents_NormalizesPagination(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	// Некорректные page/pageSize приводятся к значениям по умолчанию
	repoMock.EXPECT().
		ListByReporter(ctx, int64(7), 1, 20).
		Return([]*models.Incident{}, nil).
		Times(1)

	// Действие
	_, err := service.ListIncidents(ctx, 7, -1, 1000)

	// Проверки
	require.NoError(t, err)
}

func TestSearchIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncident := &models.Incident{
		ID:         42,
		IncidentID: "RMG123452026",
		ReporterID: 7,
	}

	// Ожидания
	repoMock.EXPECT().
		GetByIncidentID(ctx, int64(7), "RMG123452026").
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := service.SearchIncident(ctx, 7, "RMG123452026")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestSearchIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		GetByIncidentID(ctx, int64(7), "RMG000002026").
		Return(nil, ErrNotFound).
		Times(1)

	// Действие
	incident, err := service.SearchIncident(ctx, 7, "RMG000002026")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedStats := &models.IncidentStats{
		Total:  3,
		Open:   1,
		Closed: 2,
		High:   1,
		Medium: 2,
	}

	// Ожидания
	repoMock.EXPECT().
		StatsByReporter(ctx, int64(7)).
		Return(expectedStats, nil).
		Times(1)

	// Действие
	stats, err := service.GetStats(ctx, 7)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedStats, stats)
}

func TestCloseIncident_Success(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Status:     models.StatusInProgress,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	closed, err := service.CloseIncident(ctx, 7, 42)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, closed.Status)
}

func TestCloseIncident_AlreadyClosed(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Status:     models.StatusClosed,
	}

	// Ожидания
	// Повторное закрытие отклоняется отдельной ошибкой, Update не вызывается
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	closed, err := service.CloseIncident(ctx, 7, 42)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, closed)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.NotErrorIs(t, err, ErrIncidentClosed)
}

func TestCloseIncident_ConcurrentCloseDetected(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         42,
		ReporterID: 7,
		Status:     models.StatusInProgress,
	}

	// Ожидания
	// Параллельное закрытие между чтением и записью трактуется как повторное
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, gomock.Any()).Return(ErrIncidentClosed).Times(1)

	// Действие
	closed, err := service.CloseIncident(ctx, 7, 42)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, closed)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestCloseIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(7), int64(42)).Return(nil, ErrNotFound).Times(1)

	// Действие
	closed, err := service.CloseIncident(ctx, 7, 42)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, closed)
	assert.ErrorIs(t, err, ErrNotFound)
}
