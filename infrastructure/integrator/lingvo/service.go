// Package lingvo integra com a API externa de tradução por modelo de
// linguagem usada para localizar o conteúdo do aplicativo.
package lingvo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wellness-reporting-api/infrastructure/integrator/lingvo/lingvoclient"
	"github.com/vfg2006/wellness-reporting-api/internal/config"
)

// LingvoIntegrator implementa localizing.Translator sobre o cliente HTTP.
// A verificação de ordem/quantidade do lote fica no pipeline de tradução;
// aqui só se repassa a resposta do backend.
type LingvoIntegrator struct {
	cfg    *config.Config
	Client lingvoclient.Client
}

func New(cfg *config.Config, client lingvoclient.Client) *LingvoIntegrator {
	return &LingvoIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *LingvoIntegrator) Translate(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	resp, err := s.Client.BatchTranslate(ctx, &lingvoclient.BatchTranslateRequest{
		Texts:          texts,
		TargetLanguage: targetLanguage,
		Model:          s.cfg.Lingvo.Model,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"target_language": targetLanguage,
			"batch_size":      len(texts),
			"error":           err.Error(),
		}).Error("lingvo: falha na chamada de tradução em lote")
		return nil, errors.Wrap(err, "erro ao traduzir lote")
	}

	logrus.WithFields(logrus.Fields{
		"target_language": targetLanguage,
		"batch_size":      len(texts),
	}).Debug("lingvo: lote traduzido com sucesso")

	return resp.Translations, nil
}
