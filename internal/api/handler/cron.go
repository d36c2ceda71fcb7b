package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wellness-reporting-api/internal/scheduler"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/authenticating"
	"github.com/vfg2006/wellness-reporting-api/pkg/apiErrors"
	"github.com/vfg2006/wellness-reporting-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeWeeklyReport = "weekly-report"
	CronJobTypeEventCleanup = "event-cleanup"
	CronJobTypeAll          = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	WeeklyReportSyncService *scheduler.WeeklyReportSyncService
	EventCleanupService     *scheduler.EventCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*authenticating.ServiceClaims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Chamador não autenticado", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"cron_type": cronType,
			"caller":    claims.Subject,
		}).Info("Execução manual de cron job solicitada")

		switch cronType {
		case CronJobTypeWeeklyReport:
			if services.WeeklyReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de relatórios semanais não disponível", nil)
				return
			}
			services.WeeklyReportSyncService.TriggerManualSync()

		case CronJobTypeEventCleanup:
			if services.EventCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de eventos não disponível", nil)
				return
			}
			services.EventCleanupService.TriggerManualSync()

		case CronJobTypeAll:
			if services.WeeklyReportSyncService != nil {
				services.WeeklyReportSyncService.TriggerManualSync()
			}
			if services.EventCleanupService != nil {
				services.EventCleanupService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: weekly-report, event-cleanup, all", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"message": "Cron job disparada"})
	}
}

// GetCronStatus retorna o estado de execução de cada agendador
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]scheduler.SyncStatus)

		if services.WeeklyReportSyncService != nil {
			status[CronJobTypeWeeklyReport] = services.WeeklyReportSyncService.Status()
		}
		if services.EventCleanupService != nil {
			status[CronJobTypeEventCleanup] = services.EventCleanupService.Status()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.WithError(err).Error("Erro ao enviar status dos crons")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
