package lingvoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wellness-reporting-api/pkg/utils"
)

// BatchTranslateRequest é o corpo enviado ao endpoint de tradução em lote
type BatchTranslateRequest struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"target_language"`
	Model          string   `json:"model,omitempty"`
}

// BatchTranslateResponse carrega as traduções na mesma ordem dos textos
// enviados. O contrato de ordem/quantidade é do backend; o pipeline valida.
type BatchTranslateResponse struct {
	Translations []string `json:"translations"`
}

func (c *LingvoClient) BatchTranslate(ctx context.Context, req *BatchTranslateRequest) (*BatchTranslateResponse, error) {
	url := fmt.Sprintf("%s/batch-translate", c.Cfg.Lingvo.URL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar requisição de tradução")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).Error("lingvo: erro ao criar a requisição")
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.Cfg.Lingvo.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logrus.WithError(err).Error("lingvo: erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta do backend de tradução")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(respBody),
		}).Error("lingvo: backend respondeu com erro")
		return nil, fmt.Errorf("backend de tradução respondeu %d", resp.StatusCode)
	}

	logrus.Debug("lingvo: resposta recebida: ", utils.PrettyJson(respBody))

	var response BatchTranslateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		logrus.WithError(err).Error("lingvo: erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}
