package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-metrics-api/internal/scheduler"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
)

// Aliases aceitos em /v1/cron/:type/run, além dos nomes dos jobs
const (
	CronJobTypeHourly = "hourly"
	CronJobTypeDaily  = "daily"
	CronJobTypeAll    = "all"
)

// CronRunner é implementado por *scheduler.MetricsScheduler
type CronRunner interface {
	TriggerManual(job string) error
	GetStatus() map[string]any
}

// RunCronJob executa manualmente um job do agendador
func RunCronJob(runner CronRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs, ok := resolveCronJobs(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: hourly, daily, all", nil)
			return
		}

		started := make([]string, 0, len(jobs))
		skipped := make([]string, 0)
		for _, job := range jobs {
			if err := runner.TriggerManual(job); err != nil {
				// Com um único job o erro vai para o cliente; em "all" o job ocupado é só pulado
				if len(jobs) == 1 {
					writeServiceError(w, r, err)
					return
				}
				logrus.WithError(err).WithField("job", job).Warn("Job não disparado")
				skipped = append(skipped, job)
				continue
			}
			started = append(started, job)
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
			"skipped": skipped,
		})
	}
}

// GetCronStatus retorna o status dos jobs agendados
func GetCronStatus(runner CronRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, runner.GetStatus())
	}
}

func resolveCronJobs(cronType string) ([]string, bool) {
	switch cronType {
	case CronJobTypeHourly, scheduler.JobHourlyCollection:
		return []string{scheduler.JobHourlyCollection}, true
	case CronJobTypeDaily, scheduler.JobDailyRollup:
		return []string{scheduler.JobDailyRollup}, true
	case CronJobTypeAll:
		return []string{scheduler.JobHourlyCollection, scheduler.JobDailyRollup}, true
	}
	return nil, false
}
