package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/internal/usecases/collecting"
)

// CollectAllPlatforms dispara uma coleta síncrona de todas as plataformas configuradas.
// A coleta não é interrompida se o cliente desconectar.
func CollectAllPlatforms(collector collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CollectAllPlatforms")

		report := collector.CollectAll(context.WithoutCancel(r.Context()))

		writeJSON(w, http.StatusOK, report)
	}
}

func CollectPlatform(collector collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, ok := platformParam(w, r)
		if !ok {
			return
		}

		logrus.WithField("platform", platform).Info("INIT - CollectPlatform")

		snapshot, err := collector.CollectOne(context.WithoutCancel(r.Context()), platform)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, snapshot)
	}
}

// ListPlatforms retorna as plataformas habilitadas para coleta
func ListPlatforms(collector collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"platforms": collector.Platforms(),
		})
	}
}
