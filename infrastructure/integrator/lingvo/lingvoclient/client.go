package lingvoclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/wellness-reporting-api/internal/config"
)

type Client interface {
	BatchTranslate(ctx context.Context, req *BatchTranslateRequest) (*BatchTranslateResponse, error)
}

type LingvoClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &LingvoClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Lingvo.TimeoutSeconds) * time.Second,
		},
	}
}
