package social

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

const (
	HeaderRateLimitRemaining = "x-rate-limit-remaining"
	HeaderRateLimitReset     = "x-rate-limit-reset"

	lowRemainingThreshold = 10
)

// RateLimitState é o último par de cabeçalhos observado para uma plataforma
type RateLimitState struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RateLimitMonitor mantém o estado de cota por plataforma durante a vida do processo
type RateLimitMonitor struct {
	mu     sync.RWMutex
	states map[domain.Platform]RateLimitState
	now    func() time.Time
}

func NewRateLimitMonitor() *RateLimitMonitor {
	return &RateLimitMonitor{
		states: make(map[domain.Platform]RateLimitState),
		now:    time.Now,
	}
}

// TrackRateLimit só altera o estado quando os dois cabeçalhos estão presentes e válidos
func (m *RateLimitMonitor) TrackRateLimit(platform domain.Platform, header http.Header) {
	remainingRaw := header.Get(HeaderRateLimitRemaining)
	resetRaw := header.Get(HeaderRateLimitReset)
	if remainingRaw == "" || resetRaw == "" {
		return
	}

	remaining, err := strconv.Atoi(remainingRaw)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"value":    remainingRaw,
		}).Warn("Cabeçalho x-rate-limit-remaining inválido, ignorando")
		return
	}

	resetUnix, err := strconv.ParseInt(resetRaw, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"value":    resetRaw,
		}).Warn("Cabeçalho x-rate-limit-reset inválido, ignorando")
		return
	}

	state := RateLimitState{
		Remaining: remaining,
		ResetAt:   time.Unix(resetUnix, 0),
	}

	m.mu.Lock()
	m.states[platform] = state
	m.mu.Unlock()

	if remaining < lowRemainingThreshold {
		logrus.WithFields(logrus.Fields{
			"platform":  platform,
			"remaining": remaining,
			"reset_at":  state.ResetAt.Format(time.RFC3339),
		}).Warn("Limite de requisições da plataforma próximo do fim")
	}
}

// CanMakeRequest retorna false apenas com a cota zerada e a janela ainda aberta
func (m *RateLimitMonitor) CanMakeRequest(platform domain.Platform) bool {
	m.mu.RLock()
	state, ok := m.states[platform]
	m.mu.RUnlock()

	if !ok {
		return true
	}

	return state.Remaining > 0 || !m.now().Before(state.ResetAt)
}

func (m *RateLimitMonitor) State(platform domain.Platform) (RateLimitState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[platform]
	return state, ok
}

// Snapshot retorna uma cópia do estado de todas as plataformas conhecidas
func (m *RateLimitMonitor) Snapshot() map[domain.Platform]RateLimitState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[domain.Platform]RateLimitState, len(m.states))
	for k, v := range m.states {
		out[k] = v
	}
	return out
}
