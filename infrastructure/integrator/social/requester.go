package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	UserAgent = "Social-Metrics-Collector/1.0"

	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second

	maxErrorBodySize = 512
)

type AuthStyle int

const (
	// AuthBearer envia o token no cabeçalho Authorization (TikTok, Twitter)
	AuthBearer AuthStyle = iota
	// AuthQueryParam envia o token como access_token na query string (Graph API)
	AuthQueryParam
)

type RequesterConfig struct {
	Platform             domain.Platform
	BaseURL              string
	AccessToken          string
	Auth                 AuthStyle
	Timeout              time.Duration
	MaxRetries           int
	RetryDelay           time.Duration
	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

// Requester executa as chamadas HTTP de um adapter respeitando cota, retentativas e timeout
type Requester struct {
	platform   domain.Platform
	client     *resty.Client
	monitor    *RateLimitMonitor
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

func NewRequester(cfg RequesterConfig, monitor *RateLimitMonitor) *Requester {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if monitor == nil {
		monitor = NewRateLimitMonitor()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")

	if cfg.AccessToken != "" {
		switch cfg.Auth {
		case AuthQueryParam:
			client.SetQueryParam("access_token", cfg.AccessToken)
		default:
			client.SetAuthToken(cfg.AccessToken)
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimitWindow > 0 && cfg.RateLimitMaxRequests > 0 {
		every := cfg.RateLimitWindow / time.Duration(cfg.RateLimitMaxRequests)
		limiter = rate.NewLimiter(rate.Every(every), cfg.RateLimitMaxRequests)
	}

	return &Requester{
		platform:   cfg.Platform,
		client:     client,
		monitor:    monitor,
		limiter:    limiter,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

func (r *Requester) Platform() domain.Platform {
	return r.platform
}

func (r *Requester) Monitor() *RateLimitMonitor {
	return r.monitor
}

// Get chama o endpoint e decodifica o corpo em out (ignorado quando nil).
// Erros retornados: *RateLimitExceededError, *UpstreamError, *NormalizationError ou o erro do contexto.
func (r *Requester) Get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	stats := StatsFromContext(ctx)

	attempt := 0
	operation := func() error {
		attempt++
		return r.do(ctx, endpoint, params, out)
	}

	notify := func(err error, wait time.Duration) {
		stats.AddRetry()
		logrus.WithFields(logrus.Fields{
			"platform":    r.platform,
			"endpoint":    endpoint,
			"retry_count": attempt,
			"wait":        wait.String(),
			"error":       err.Error(),
		}).Warn("Retentando requisição para a API da plataforma")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: r.retryDelay}, uint64(r.maxRetries)),
		ctx,
	)

	err := backoff.RetryNotify(operation, policy, notify)
	if err == nil {
		return nil
	}

	stats.AddError()

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		logrus.WithFields(logrus.Fields{
			"platform": r.platform,
			"endpoint": endpoint,
			"status":   upstream.Status,
			"response": upstream.Body,
			"attempts": attempt,
		}).Error("Erro na API da plataforma")
	}

	return err
}

func (r *Requester) do(ctx context.Context, endpoint string, params map[string]string, out any) error {
	if !r.monitor.CanMakeRequest(r.platform) {
		state, _ := r.monitor.State(r.platform)
		return backoff.Permanent(&RateLimitExceededError{Platform: r.platform, ResetAt: state.ResetAt})
	}

	if r.limiter != nil && !r.limiter.Allow() {
		return backoff.Permanent(&RateLimitExceededError{Platform: r.platform})
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		return &UpstreamError{Platform: r.platform, Endpoint: endpoint, Err: err}
	}

	if !resp.IsSuccess() {
		upstream := &UpstreamError{
			Platform: r.platform,
			Endpoint: endpoint,
			Status:   resp.StatusCode(),
			Body:     truncate(resp.String(), maxErrorBodySize),
			Err:      fmt.Errorf("resposta inesperada: %s", resp.Status()),
		}
		if !upstream.Retryable() {
			return backoff.Permanent(upstream)
		}
		return upstream
	}

	r.monitor.TrackRateLimit(r.platform, resp.Header())

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return backoff.Permanent(&NormalizationError{Platform: r.platform, Field: endpoint, Err: err})
	}

	return nil
}

// linearBackOff espera attempt x step entre as tentativas
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.step
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
