package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/usecases/collecting"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

const maxImportBodyBytes = 1 << 20

// ListRecentMetrics retorna os snapshots mais recentes de todas as plataformas
func ListRecentMetrics(reader collecting.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r, collecting.DefaultRecentLimit)
		if !ok {
			return
		}

		snapshots, err := reader.Recent(r.Context(), "", limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshots)
	}
}

// GetPlatformMetrics retorna os últimos snapshots da plataforma ou, com start_date, o histórico do intervalo
func GetPlatformMetrics(reader collecting.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, ok := platformParam(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		if query.Get("start_date") == "" && query.Get("end_date") == "" {
			limit, ok := parseLimit(w, r, collecting.DefaultPlatformLimit)
			if !ok {
				return
			}

			snapshots, err := reader.Recent(r.Context(), platform, limit)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, snapshots)
			return
		}

		from, to, ok := parseRange(w, query.Get("start_date"), query.Get("end_date"))
		if !ok {
			return
		}

		snapshots, err := reader.History(r.Context(), platform, from, to)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshots)
	}
}

func GetLatestMetrics(reader collecting.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, ok := platformParam(w, r)
		if !ok {
			return
		}

		snapshot, err := reader.Latest(r.Context(), platform)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

// ImportMetrics grava um snapshot histórico enviado no corpo da requisição
func ImportMetrics(reader collecting.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBodyBytes)

		var snapshot domain.MetricsSnapshot
		if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		saved, err := reader.Import(r.Context(), &snapshot)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, saved)
	}
}

func platformParam(w http.ResponseWriter, r *http.Request) (domain.Platform, bool) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("platform")
	platform, err := domain.ParsePlatform(name)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPlatform, err.Error(), map[string]any{
			"accepted": domain.AllPlatforms,
		})
		return "", false
	}
	return platform, true
}

func parseLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
		return 0, false
	}
	return limit, true
}

// parseRange monta [from, to). end_date só com a data inclui o dia inteiro; sem end_date, vai até agora.
func parseRange(w http.ResponseWriter, startRaw, endRaw string) (time.Time, time.Time, bool) {
	if startRaw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date é obrigatório quando end_date é informado", nil)
		return time.Time{}, time.Time{}, false
	}

	start, err := utils.ParseDate(startRaw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválido, use YYYY-MM-DD ou RFC3339", nil)
		return time.Time{}, time.Time{}, false
	}

	end := time.Now()
	if endRaw != "" {
		parsed, err := utils.ParseDate(endRaw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválido, use YYYY-MM-DD ou RFC3339", nil)
			return time.Time{}, time.Time{}, false
		}
		end = *parsed
		if len(endRaw) == len(time.DateOnly) {
			end = end.AddDate(0, 0, 1)
		}
	}

	return *start, end, true
}
