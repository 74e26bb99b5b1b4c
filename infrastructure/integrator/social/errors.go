package social

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

// RateLimitExceededError indica que a cota da plataforma está esgotada.
// Nenhuma chamada é feita e não há retentativa.
type RateLimitExceededError struct {
	Platform domain.Platform
	ResetAt  time.Time
}

func (e *RateLimitExceededError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("limite de requisições excedido para %s", e.Platform)
	}
	return fmt.Sprintf("limite de requisições excedido para %s até %s", e.Platform, e.ResetAt.Format(time.RFC3339))
}

// UpstreamError é a falha final de uma chamada depois das retentativas.
// Status 0 indica erro de rede, sem resposta HTTP.
type UpstreamError struct {
	Platform domain.Platform
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: erro de rede em %s: %v", e.Platform, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: status %d (%s) em %s", e.Platform, e.Status, http.StatusText(e.Status), e.Endpoint)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable informa se o erro admite nova tentativa (429, 503, 504 ou rede)
func (e *UpstreamError) Retryable() bool {
	return shouldRetry(e.Status)
}

// NormalizationError indica um payload que não pôde ser convertido para o formato comum
type NormalizationError struct {
	Platform domain.Platform
	Field    string
	Err      error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s: erro ao normalizar %s: %v", e.Platform, e.Field, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

func shouldRetry(status int) bool {
	switch status {
	case 0, http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
