package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/wellness-reporting-api/internal/usecases/localizing"
	"github.com/vfg2006/wellness-reporting-api/pkg/apiErrors"
	"github.com/vfg2006/wellness-reporting-api/pkg/log"
)

// TranslateRequest aceita qualquer árvore JSON no campo json
type TranslateRequest struct {
	JSON           *localizing.Node `json:"json"`
	TargetLanguage string           `json:"targetLanguage"`
}

type TranslateResponse struct {
	Translation       *localizing.Node   `json:"translation"`
	StringsTranslated int                `json:"stringsTranslated"`
	Outcome           localizing.Outcome `json:"outcome"`
}

// TranslateJSON traduz todas as folhas de texto da árvore recebida. Falhas
// do backend de tradução nunca viram erro HTTP: a resposta degrada para o
// conteúdo original com outcome = fallback.
func TranslateJSON(service localizing.Localizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req TranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("translate: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.JSON == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo json é obrigatório", nil)
			return
		}

		if !localizing.IsSupportedLanguage(req.TargetLanguage) {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedLanguage, "Idioma de destino não suportado", map[string]any{
				"targetLanguage": req.TargetLanguage,
			})
			return
		}

		result, err := service.TranslateTree(r.Context(), req.JSON, req.TargetLanguage)
		if err != nil {
			logger.WithFields(log.Fields{
				"target_language": req.TargetLanguage,
				"error":           err.Error(),
			}).Error("translate: falha no pipeline de tradução")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao traduzir conteúdo", nil)
			return
		}

		logger.WithFields(log.Fields{
			"target_language":    req.TargetLanguage,
			"strings_translated": result.StringsTranslated,
			"outcome":            string(result.Outcome),
		}).Info("translate: tradução concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TranslateResponse{
			Translation:       result.Tree,
			StringsTranslated: result.StringsTranslated,
			Outcome:           result.Outcome,
		}); err != nil {
			logger.WithError(err).Error("translate: falha ao enviar resposta")
		}
	})
}
