package handler

import (
	"net/http"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

// RateLimitReader é implementado por *social.RateLimitMonitor
type RateLimitReader interface {
	Snapshot() map[domain.Platform]social.RateLimitState
	CanMakeRequest(platform domain.Platform) bool
}

// GetRateLimits retorna o último estado de cota observado por plataforma
func GetRateLimits(monitor RateLimitReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := monitor.Snapshot()

		response := make(map[string]any, len(snapshot))
		for platform, state := range snapshot {
			response[platform.String()] = map[string]any{
				"remaining":   state.Remaining,
				"reset_at":    state.ResetAt,
				"can_request": monitor.CanMakeRequest(platform),
			}
		}

		writeJSON(w, http.StatusOK, response)
	}
}
