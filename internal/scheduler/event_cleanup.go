package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository"
	"github.com/vfg2006/wellness-reporting-api/internal/config"
)

type EventCleanupConfig struct {
	CronSchedule  string
	Enabled       bool
	RetentionDays int
}

// EventCleanupService poda o log de eventos fora da janela de retenção. O
// log não tem retenção imposta pelo agregador; a poda é responsabilidade
// deste agendador.
type EventCleanupService struct {
	scheduler           *gocron.Scheduler
	eventRepo           repository.EventRepository
	config              EventCleanupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewEventCleanupService(
	eventRepo repository.EventRepository,
	cfg *config.Config,
) *EventCleanupService {
	cleanupConfig := EventCleanupConfig{
		CronSchedule:  cfg.EventCleanup.CronSchedule,  // Default: 4h da manhã todos os dias
		Enabled:       cfg.EventCleanup.Enabled,       // Default: desabilitado
		RetentionDays: cfg.EventCleanup.RetentionDays, // Default: 180 dias
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cleanupConfig.CronSchedule,
		"retention_days": cleanupConfig.RetentionDays,
	}).Info("Configuração do agendador de limpeza de eventos carregada")

	return &EventCleanupService{
		scheduler: scheduler,
		eventRepo: eventRepo,
		config:    cleanupConfig,
	}
}

func (s *EventCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de limpeza do log de eventos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza do log de eventos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.CleanupEvents(); err != nil {
			logrus.WithError(err).Error("Erro na limpeza do log de eventos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do log de eventos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de eventos")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a limpeza fora do horário agendado
func (s *EventCleanupService) TriggerManualSync() {
	go func() {
		if err := s.CleanupEvents(); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual do log de eventos")
		}
	}()
}

// Status retorna o estado atual de execução para o endpoint de cron
func (s *EventCleanupService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{Running: s.syncRunning}
	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastCompletedAt = &completedAt
	}
	return status
}

func (s *EventCleanupService) CleanupEvents() error {
	s.syncMutex.Lock()

	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Limpeza do log de eventos já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.WithField("retention_days", s.config.RetentionDays).Info("Iniciando limpeza do log de eventos")

	deleted, err := s.eventRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover eventos fora da retenção")
		return err
	}

	logrus.WithField("events_deleted", deleted).Info("Limpeza do log de eventos concluída")

	return nil
}
