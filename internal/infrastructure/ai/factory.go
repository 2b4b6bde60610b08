package ai

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

const requestTimeout = 60 * time.Second

// Factory builds provider clients for a configuration.
type Factory struct {
	http  *resty.Client
	usage ports.UsageRecorder
	log   ports.Logger
}

// NewFactory creates a factory sharing one HTTP client across providers.
func NewFactory(usage ports.UsageRecorder, log ports.Logger) *Factory {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", "shai-term").
		SetHeader("Content-Type", "application/json")
	return &Factory{http: client, usage: usage, log: log}
}

// ForConfig returns a client for cfg, or domain.ErrMissingAPIKey when the
// provider needs a key and none is configured.
func (f *Factory) ForConfig(cfg domain.AppConfig) (ports.AIClient, error) {
	if !cfg.HasCredential() {
		return nil, domain.ErrMissingAPIKey
	}

	kind := cfg.ProviderKind()
	endpoint := cfg.ResolvedEndpoint()

	var b backend
	switch kind {
	case domain.ProviderAnthropic:
		b = &anthropicBackend{http: f.http, endpoint: endpoint, apiKey: cfg.APIKey}
	case domain.ProviderOllama:
		b = &ollamaBackend{http: f.http, endpoint: endpoint}
	default:
		b = newOpenAIBackend(endpoint, cfg.APIKey, f.http.GetClient())
	}

	return &Client{
		provider: kind,
		model:    cfg.Model,
		backend:  b,
		usage:    f.usage,
		log:      f.log,
	}, nil
}

var _ ports.AIClientFactory = (*Factory)(nil)
