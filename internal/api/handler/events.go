package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/wellness-reporting-api/infrastructure/repository"
	"github.com/vfg2006/wellness-reporting-api/internal/domain"
	"github.com/vfg2006/wellness-reporting-api/pkg/apiErrors"
	"github.com/vfg2006/wellness-reporting-api/pkg/log"
	"github.com/vfg2006/wellness-reporting-api/pkg/utils"
)

// CreateEvent registra um evento de interação no log. O produtor informa a
// data de agrupamento (YYYY-MM-DD); apenas o formato é validado aqui, a
// consistência com o timestamp é responsabilidade do produtor.
func CreateEvent(repo repository.EventRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var event domain.Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			logger.WithError(err).Warn("events: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if event.TargetID == "" || event.UserEmail == "" || event.Date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "targetId, userEmail e date são obrigatórios", nil)
			return
		}

		if !domain.IsValidEventType(event.Type) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de evento desconhecido", map[string]any{
				"type": event.Type,
			})
			return
		}

		if _, err := time.Parse(time.DateOnly, event.Date); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		// Eventos de anúncio implicam targetType = ad
		isAdEvent := event.Type == domain.EventTypeAdImpression || event.Type == domain.EventTypeAdClick
		switch {
		case isAdEvent && event.TargetType == "":
			event.TargetType = domain.TargetTypeAd
		case isAdEvent && event.TargetType != domain.TargetTypeAd:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Eventos de anúncio exigem targetType = ad", nil)
			return
		case !isAdEvent && event.TargetType == "":
			event.TargetType = domain.TargetTypeMemory
		}

		if event.Timestamp == "" {
			event.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}

		if event.ID == "" {
			id, err := utils.NewEventID()
			if err != nil {
				logger.WithError(err).Error("events: falha ao gerar ID do evento")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar ID do evento", nil)
				return
			}
			event.ID = id
		}

		if err := repo.Save(&event); err != nil {
			logger.WithFields(log.Fields{
				"event_id": event.ID,
				"error":    err.Error(),
			}).Error("events: falha ao salvar evento")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar evento", nil)
			return
		}

		logger.WithFields(log.Fields{
			"event_id":   event.ID,
			"event_type": string(event.Type),
		}).Debug("events: evento registrado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(map[string]string{"id": event.ID}); err != nil {
			logger.WithError(err).Error("events: falha ao enviar resposta")
		}
	})
}
