package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository"
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
	"github.com/vfg2006/wellness-reporting-api/internal/usecases/reporting"
	"github.com/vfg2006/wellness-reporting-api/pkg/apiErrors"
	"github.com/vfg2006/wellness-reporting-api/pkg/log"
	"github.com/vfg2006/wellness-reporting-api/pkg/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// GetWeeklyReport recalcula o relatório da semana que contém a data de
// referência (hoje, quando omitida) para o usuário informado
func GetWeeklyReport(service reporting.Reporter, repo repository.EventRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		email := r.URL.Query().Get("email")
		if email == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro email é obrigatório", nil)
			return
		}

		reference := time.Now()
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := utils.ParseDate(dateStr)
			if err != nil {
				logger.WithFields(log.Fields{
					"date":  dateStr,
					"error": err.Error(),
				}).Warn("reports: parâmetro date inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date deve estar no formato YYYY-MM-DD", nil)
				return
			}
			reference = *parsed
		}

		monday, sunday := reporting.CurrentWeekWindow(reference)

		events, err := repo.GetByUserAndDateRange(email, monday.Format(time.DateOnly), sunday.Format(time.DateOnly))
		if err != nil {
			logger.WithFields(log.Fields{
				"user_email": email,
				"error":      err.Error(),
			}).Error("reports: falha ao buscar eventos da semana")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar eventos da semana", nil)
			return
		}

		report, err := service.GenerateWeeklyReport(events, reference)
		if err != nil {
			logger.WithError(err).Error("reports: falha ao gerar relatório semanal")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório semanal", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: falha ao enviar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// SendWeeklyReport valida o contrato de envio ({userEmail, report}) e
// encaminha o relatório para o despacho. O despacho por e-mail fica fora
// deste serviço; o comportamento atual é registrar o aceite.
func SendWeeklyReport() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.SendReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if details := validateSendReport(&req); details != nil {
			logger.WithField("details", details).Warn("reports: relatório rejeitado na validação")
			apiErrors.WriteError(w, apiErrors.ErrInvalidReportPayload, "Relatório fora do contrato de envio", details)
			return
		}

		logger.WithFields(log.Fields{
			"user_email": req.UserEmail,
			"week":       req.Report.WeekLabel,
			"start_date": req.Report.StartDate,
			"end_date":   req.Report.EndDate,
		}).Info("reports: relatório semanal validado e encaminhado para despacho")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]string{"message": "Relatório aceito para envio"}); err != nil {
			logger.WithError(err).Error("reports: falha ao enviar resposta")
		}
	})
}

func validateSendReport(req *domain.SendReportRequest) []string {
	var details []string

	if !emailPattern.MatchString(req.UserEmail) {
		details = append(details, "userEmail inválido")
	}

	if req.Report == nil {
		return append(details, "report é obrigatório")
	}

	if !datePattern.MatchString(req.Report.StartDate) || !datePattern.MatchString(req.Report.EndDate) {
		details = append(details, "startDate e endDate devem estar no formato YYYY-MM-DD")
	}

	metrics := req.Report.Metrics
	if metrics == nil {
		return append(details, "report.metrics é obrigatório")
	}

	counts := map[string]int{
		"totalViews":         metrics.TotalViews,
		"totalLikes":         metrics.TotalLikes,
		"totalComments":      metrics.TotalComments,
		"totalShares":        metrics.TotalShares,
		"totalAdImpressions": metrics.TotalAdImpressions,
		"totalAdClicks":      metrics.TotalAdClicks,
	}
	for field, value := range counts {
		if value < 0 {
			details = append(details, field+" não pode ser negativo")
		}
	}

	if metrics.EngagementRate < 0 || metrics.EngagementRate > 100 {
		details = append(details, "engagementRate deve estar entre 0 e 100")
	}
	if metrics.AdClickThroughRate < 0 || metrics.AdClickThroughRate > 100 {
		details = append(details, "adClickThroughRate deve estar entre 0 e 100")
	}

	return details
}
