package social

import (
	"context"
	"sync"
)

// RequestStats acumula retentativas e erros de todas as chamadas de uma coleta
type RequestStats struct {
	mu      sync.Mutex
	retries int
	errors  int
}

type requestStatsKey struct{}

// WithRequestStats anexa um contador novo ao contexto
func WithRequestStats(ctx context.Context) (context.Context, *RequestStats) {
	stats := &RequestStats{}
	return context.WithValue(ctx, requestStatsKey{}, stats), stats
}

// StatsFromContext retorna nil quando o contexto não carrega contador
func StatsFromContext(ctx context.Context) *RequestStats {
	stats, _ := ctx.Value(requestStatsKey{}).(*RequestStats)
	return stats
}

func (s *RequestStats) AddRetry() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.retries++
	s.mu.Unlock()
}

func (s *RequestStats) AddError() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.errors++
	s.mu.Unlock()
}

func (s *RequestStats) Retries() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retries
}

func (s *RequestStats) Errors() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors
}
