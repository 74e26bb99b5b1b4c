package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/infrastructure/integrator/social"
	"github.com/vfg2006/social-metrics-api/internal/scheduler"
	"github.com/vfg2006/social-metrics-api/internal/usecases/collecting"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros dos usecases para os códigos da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rateErr     *social.RateLimitExceededError
		upstreamErr *social.UpstreamError
		normErr     *social.NormalizationError
	)

	switch {
	case errors.As(err, &rateErr):
		details := map[string]any{"platform": rateErr.Platform}
		if !rateErr.ResetAt.IsZero() {
			details["reset_at"] = rateErr.ResetAt
		}
		apiErrors.WriteError(w, apiErrors.ErrRateLimited, err.Error(), details)
	case errors.As(err, &upstreamErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), map[string]any{
			"platform": upstreamErr.Platform,
			"status":   upstreamErr.Status,
		})
	case errors.As(err, &normErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), map[string]any{
			"platform": normErr.Platform,
			"field":    normErr.Field,
		})
	case errors.Is(err, collecting.ErrPlatformNotConfigured):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPlatform, err.Error(), nil)
	case errors.Is(err, collecting.ErrSnapshotNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)
	case errors.Is(err, collecting.ErrInvalidSnapshot):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, collecting.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, scheduler.ErrJobRunning):
		apiErrors.WriteError(w, apiErrors.ErrJobRunning, err.Error(), nil)
	case errors.Is(err, scheduler.ErrUnknownJob):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro inesperado ao processar requisição")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}
