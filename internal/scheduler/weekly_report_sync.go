// Package scheduler contém os serviços de agendamento: envio semanal de
// relatórios e limpeza do log de eventos.
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
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/reporting"
)

// SyncStatus é o retrato do estado de execução de um agendador
type SyncStatus struct {
	Running         bool       `json:"running"`
	LastStartedAt   *time.Time `json:"lastStartedAt,omitempty"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
}

type WeeklyReportSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

type WeeklyReportSyncService struct {
	scheduler           *gocron.Scheduler
	eventRepo           repository.EventRepository
	reporter            reporting.Reporter
	config              WeeklyReportSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewWeeklyReportSyncService(
	eventRepo repository.EventRepository,
	reporter reporting.Reporter,
	cfg *config.Config,
) *WeeklyReportSyncService {
	syncConfig := WeeklyReportSyncConfig{
		CronSchedule: cfg.WeeklyReportSync.CronSchedule, // Default: segunda-feira às 7h
		Enabled:      cfg.WeeklyReportSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de relatórios semanais carregada")

	return &WeeklyReportSyncService{
		scheduler: scheduler,
		eventRepo: eventRepo,
		reporter:  reporter,
		config:    syncConfig,
	}
}

func (s *WeeklyReportSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de envio de relatórios semanais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de envio de relatórios semanais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.DispatchWeeklyReports(); err != nil {
			logrus.WithError(err).Error("Erro no envio de relatórios semanais")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar envio de relatórios semanais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de relatórios semanais")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara o envio fora do horário agendado
func (s *WeeklyReportSyncService) TriggerManualSync() {
	go func() {
		if err := s.DispatchWeeklyReports(); err != nil {
			logrus.WithError(err).Error("Erro no envio manual de relatórios semanais")
		}
	}()
}

// Status retorna o estado atual de execução para o endpoint de cron
func (s *WeeklyReportSyncService) Status() SyncStatus {
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

// DispatchWeeklyReports gera e despacha o relatório da última semana
// completa para cada usuário presente no log de eventos. O cron roda na
// segunda-feira, então a referência de sete dias atrás cai na semana anterior.
func (s *WeeklyReportSyncService) DispatchWeeklyReports() error {
	s.syncMutex.Lock()

	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Envio de relatórios semanais já está em execução")
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

	logrus.Info("Iniciando envio de relatórios semanais")

	reference := time.Now().AddDate(0, 0, -7)
	dispatched, err := s.dispatchReportsFor(reference)
	if err != nil {
		return err
	}

	logrus.WithField("reports_dispatched", dispatched).Info("Envio de relatórios semanais concluído")

	return nil
}

func (s *WeeklyReportSyncService) dispatchReportsFor(reference time.Time) (int, error) {
	monday, sunday := reporting.CurrentWeekWindow(reference)
	startDate := monday.Format(time.DateOnly)
	endDate := sunday.Format(time.DateOnly)

	events, err := s.eventRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar eventos da semana para os relatórios")
		return 0, err
	}

	if len(events) == 0 {
		logrus.WithFields(logrus.Fields{
			"start_date": startDate,
			"end_date":   endDate,
		}).Info("Nenhum evento na semana, nenhum relatório para enviar")
		return 0, nil
	}

	byUser := make(map[string][]domain.Event)
	emails := make([]string, 0)
	for _, event := range events {
		if event.UserEmail == "" {
			continue
		}
		if _, seen := byUser[event.UserEmail]; !seen {
			emails = append(emails, event.UserEmail)
		}
		byUser[event.UserEmail] = append(byUser[event.UserEmail], event)
	}

	dispatched := 0
	for _, email := range emails {
		report, err := s.reporter.GenerateWeeklyReport(byUser[email], reference)
		if err != nil {
			logrus.WithError(err).WithField("user_email", email).Error("Erro ao gerar relatório semanal")
			continue
		}

		// O despacho por e-mail fica fora deste serviço; registrar é o
		// comportamento atual do sistema
		logrus.WithFields(logrus.Fields{
			"user_email":      email,
			"week":            report.WeekLabel,
			"total_views":     report.Metrics.TotalViews,
			"engagement_rate": report.Metrics.EngagementRate,
			"top_memories":    len(report.TopMemories),
			"top_ads":         len(report.TopAds),
		}).Info("Relatório semanal despachado")

		dispatched++
	}

	return dispatched, nil
}
