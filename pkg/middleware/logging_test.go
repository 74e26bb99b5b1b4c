package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/log"
)

func captureLogs(t *testing.T) *test.Hook {
	t.Helper()

	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	previous := log.L
	log.L = log.New(base)
	t.Cleanup(func() { log.L = previous })

	return hook
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		header   string
		status   int
		validate func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry)
	}{
		{
			name:   "Rota de plataforma registra a plataforma",
			path:   "/v1/metrics/TikTok/latest",
			status: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry) {
				assert.Equal(t, logrus.InfoLevel, entry.Level)
				assert.Equal(t, domain.PlatformTikTok, entry.Data["platform"])
				assert.Equal(t, http.StatusOK, entry.Data["status_code"])
				assert.Equal(t, 2, entry.Data["bytes"])
				assert.NotEmpty(t, rec.Header().Get(log.CorrelationIDHeader))
				assert.Equal(t, rec.Header().Get(log.CorrelationIDHeader), entry.Data["correlation_id"])
			},
		},
		{
			name:   "Reaproveita o ID de correlação recebido",
			path:   "/v1/collect/twitter",
			header: "req-42",
			status: http.StatusCreated,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry) {
				assert.Equal(t, "req-42", rec.Header().Get(log.CorrelationIDHeader))
				assert.Equal(t, "req-42", entry.Data["correlation_id"])
				assert.Equal(t, domain.PlatformTwitter, entry.Data["platform"])
			},
		},
		{
			name:   "Plataforma desconhecida não é registrada e 4xx vira aviso",
			path:   "/v1/metrics/orkut",
			status: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry) {
				assert.Equal(t, logrus.WarnLevel, entry.Level)
				_, ok := entry.Data["platform"]
				assert.False(t, ok)
			},
		},
		{
			name:   "Healthcheck é registrado em debug",
			path:   "/healthcheck",
			status: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry) {
				assert.Equal(t, logrus.DebugLevel, entry.Level)
			},
		},
		{
			name:   "5xx vira erro",
			path:   "/v1/rate-limits",
			status: http.StatusBadGateway,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, entry *logrus.Entry) {
				assert.Equal(t, logrus.ErrorLevel, entry.Level)
				assert.Equal(t, http.StatusBadGateway, entry.Data["status_code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := captureLogs(t)

			handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, log.GetCorrelationID(r.Context()))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("ok"))
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(log.CorrelationIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Len(t, hook.AllEntries(), 1)
			tt.validate(t, rec, hook.LastEntry())
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	hook := captureLogs(t)

	handler := LoggingMiddleware()(LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("estado inesperado")
	})))

	req := httptest.NewRequest(http.MethodPost, "/v1/collect", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "estado inesperado", entries[0].Data["panic_error"])
	assert.Equal(t, entries[0].Data["correlation_id"], entries[1].Data["correlation_id"])
	assert.Equal(t, http.StatusInternalServerError, entries[1].Data["status_code"])
}
