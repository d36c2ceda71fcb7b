package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository/mocks"
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/reporting"
	"go.uber.org/mock/gomock"
)

func TestWeeklyReportSyncService_dispatchReportsFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Quarta-feira, 10 de janeiro de 2024: semana de 08/01 a 14/01
	reference := time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setup      func(repo *mocks.MockEventRepository)
		dispatched int
		hasError   bool
	}{
		{
			name: "Um relatório por usuário distinto presente no log",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					GetByDateRange("2024-01-08", "2024-01-14").
					Return([]domain.Event{
						{ID: "E1", Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-08"},
						{ID: "E2", Type: domain.EventTypeLike, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "bruno@example.com", Date: "2024-01-09"},
						{ID: "E3", Type: domain.EventTypeView, TargetID: "m2", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-10"},
					}, nil)
			},
			dispatched: 2,
		},
		{
			name: "Semana sem eventos não despacha nada",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					GetByDateRange("2024-01-08", "2024-01-14").
					Return([]domain.Event{}, nil)
			},
			dispatched: 0,
		},
		{
			name: "Eventos sem e-mail são ignorados",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					GetByDateRange("2024-01-08", "2024-01-14").
					Return([]domain.Event{
						{ID: "E1", Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "", Date: "2024-01-08"},
						{ID: "E2", Type: domain.EventTypeView, TargetID: "m1", TargetType: domain.TargetTypeMemory, UserEmail: "ana@example.com", Date: "2024-01-08"},
					}, nil)
			},
			dispatched: 1,
		},
		{
			name: "Erro do repositório interrompe o despacho",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					GetByDateRange("2024-01-08", "2024-01-14").
					Return(nil, assert.AnError)
			},
			dispatched: 0,
			hasError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEventRepo := mocks.NewMockEventRepository(ctrl)
			tt.setup(mockEventRepo)

			service := &WeeklyReportSyncService{
				eventRepo: mockEventRepo,
				reporter:  reporting.NewService(5),
			}

			dispatched, err := service.dispatchReportsFor(reference)

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.dispatched, dispatched)
		})
	}
}

func TestWeeklyReportSyncService_Status(t *testing.T) {
	service := &WeeklyReportSyncService{}

	status := service.Status()
	assert.False(t, status.Running)
	assert.Nil(t, status.LastStartedAt)
	assert.Nil(t, status.LastCompletedAt)

	startedAt := time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)
	service.syncMutex.Lock()
	service.syncRunning = true
	service.lastSyncStartedAt = startedAt
	service.syncMutex.Unlock()

	status = service.Status()
	assert.True(t, status.Running)
	assert.Equal(t, startedAt, *status.LastStartedAt)
	assert.Nil(t, status.LastCompletedAt)
}

func TestEventCleanupService_CleanupEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		setup    func(repo *mocks.MockEventRepository)
		hasError bool
	}{
		{
			name: "Poda eventos além da janela de retenção",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					DeleteOlderThan(180).
					Return(int64(42), nil)
			},
		},
		{
			name: "Erro do repositório é propagado",
			setup: func(repo *mocks.MockEventRepository) {
				repo.EXPECT().
					DeleteOlderThan(180).
					Return(int64(0), assert.AnError)
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEventRepo := mocks.NewMockEventRepository(ctrl)
			tt.setup(mockEventRepo)

			service := &EventCleanupService{
				eventRepo: mockEventRepo,
				config:    EventCleanupConfig{RetentionDays: 180},
			}

			err := service.CleanupEvents()

			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventCleanupService_CleanupEvents_SkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao repositório é esperada
	mockEventRepo := mocks.NewMockEventRepository(ctrl)

	service := &EventCleanupService{
		eventRepo:   mockEventRepo,
		config:      EventCleanupConfig{RetentionDays: 180},
		syncRunning: true,
	}

	err := service.CleanupEvents()
	assert.NoError(t, err)
}
