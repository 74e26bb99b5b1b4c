package social

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-metrics-api/internal/domain"
)

type payload struct {
	Followers int64 `json:"followers_count"`
}

func newTestRequester(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Requester, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	r := NewRequester(RequesterConfig{
		Platform:    domain.PlatformTikTok,
		BaseURL:     server.URL,
		AccessToken: "token-teste",
		Timeout:     2 * time.Second,
		MaxRetries:  maxRetries,
		RetryDelay:  time.Millisecond,
	}, NewRateLimitMonitor())

	return r, &calls
}

func TestRequester_Get(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		handler    func(calls *int32) http.HandlerFunc
		validate   func(t *testing.T, err error, out payload, stats *RequestStats, calls int32)
	}{
		{
			name:       "Sucesso na primeira tentativa",
			maxRetries: 3,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(`{"followers_count": 1200}`))
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				require.NoError(t, err)
				assert.Equal(t, int64(1200), out.Followers)
				assert.Equal(t, int32(1), calls)
				assert.Equal(t, 0, stats.Retries())
			},
		},
		{
			name:       "Dois 503 seguidos de 200 retentam duas vezes",
			maxRetries: 3,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if atomic.LoadInt32(calls) <= 2 {
						w.WriteHeader(http.StatusServiceUnavailable)
						return
					}
					_, _ = w.Write([]byte(`{"followers_count": 10}`))
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				require.NoError(t, err)
				assert.Equal(t, int64(10), out.Followers)
				assert.Equal(t, int32(3), calls)
				assert.Equal(t, 2, stats.Retries())
				assert.Equal(t, 0, stats.Errors())
			},
		},
		{
			name:       "404 não é retentado",
			maxRetries: 3,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
					_, _ = w.Write([]byte(`{"error": "not found"}`))
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				var upstream *UpstreamError
				require.True(t, errors.As(err, &upstream))
				assert.Equal(t, http.StatusNotFound, upstream.Status)
				assert.Contains(t, upstream.Body, "not found")
				assert.Equal(t, int32(1), calls)
				assert.Equal(t, 0, stats.Retries())
				assert.Equal(t, 1, stats.Errors())
			},
		},
		{
			name:       "429 persistente esgota as retentativas",
			maxRetries: 2,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusTooManyRequests)
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				var upstream *UpstreamError
				require.True(t, errors.As(err, &upstream))
				assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
				assert.Equal(t, int32(3), calls)
				assert.Equal(t, 2, stats.Retries())
			},
		},
		{
			name:       "MaxRetries 0 não retenta",
			maxRetries: 0,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusGatewayTimeout)
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				assert.Error(t, err)
				assert.Equal(t, int32(1), calls)
			},
		},
		{
			name:       "Corpo inválido vira NormalizationError",
			maxRetries: 3,
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(`{"followers_count": "muitos"}`))
				}
			},
			validate: func(t *testing.T, err error, out payload, stats *RequestStats, calls int32) {
				var normErr *NormalizationError
				require.True(t, errors.As(err, &normErr))
				assert.Equal(t, int32(1), calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r *Requester
			var calls *int32
			var handler http.HandlerFunc
			r, calls = newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
				handler(w, req)
			}, tt.maxRetries)
			handler = tt.handler(calls)

			ctx, stats := WithRequestStats(context.Background())

			var out payload
			err := r.Get(ctx, "/user/info/", nil, &out)

			tt.validate(t, err, out, stats, atomic.LoadInt32(calls))
		})
	}
}

func TestRequester_SendsHeaders(t *testing.T) {
	var userAgent, auth, fields string
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		userAgent = req.Header.Get("User-Agent")
		auth = req.Header.Get("Authorization")
		fields = req.URL.Query().Get("fields")
		_, _ = w.Write([]byte(`{}`))
	}, 0)

	err := r.Get(context.Background(), "/user/info/", map[string]string{"fields": "followers_count"}, nil)

	require.NoError(t, err)
	assert.Equal(t, UserAgent, userAgent)
	assert.Equal(t, "Bearer token-teste", auth)
	assert.Equal(t, "followers_count", fields)
}

func TestRequester_TracksRateLimitHeaders(t *testing.T) {
	reset := time.Now().Add(15 * time.Minute).Unix()
	r, _ := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set(HeaderRateLimitRemaining, "0")
		w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(reset, 10))
		_, _ = w.Write([]byte(`{}`))
	}, 0)

	require.NoError(t, r.Get(context.Background(), "/user/info/", nil, nil))

	state, ok := r.Monitor().State(domain.PlatformTikTok)
	require.True(t, ok)
	assert.Equal(t, 0, state.Remaining)
	assert.Equal(t, reset, state.ResetAt.Unix())
}

func TestRequester_RateLimitedSkipsCall(t *testing.T) {
	r, calls := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, 3)

	r.Monitor().TrackRateLimit(domain.PlatformTikTok, http.Header{
		HeaderRateLimitRemaining: []string{"0"},
		HeaderRateLimitReset:     []string{strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)},
	})

	ctx, stats := WithRequestStats(context.Background())
	err := r.Get(ctx, "/user/info/", nil, nil)

	var rateErr *RateLimitExceededError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, domain.PlatformTikTok, rateErr.Platform)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	assert.Equal(t, 0, stats.Retries())
}

func TestRequester_LocalLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	r := NewRequester(RequesterConfig{
		Platform:             domain.PlatformTwitter,
		BaseURL:              server.URL,
		RateLimitWindow:      time.Hour,
		RateLimitMaxRequests: 2,
	}, nil)

	ctx := context.Background()
	require.NoError(t, r.Get(ctx, "/users/me", nil, nil))
	require.NoError(t, r.Get(ctx, "/users/me", nil, nil))

	err := r.Get(ctx, "/users/me", nil, nil)
	var rateErr *RateLimitExceededError
	assert.True(t, errors.As(err, &rateErr))
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{step: time.Second}

	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 3*time.Second, b.NextBackOff())

	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, shouldRetry(0))
	assert.True(t, shouldRetry(http.StatusTooManyRequests))
	assert.True(t, shouldRetry(http.StatusServiceUnavailable))
	assert.True(t, shouldRetry(http.StatusGatewayTimeout))
	assert.False(t, shouldRetry(http.StatusInternalServerError))
	assert.False(t, shouldRetry(http.StatusNotFound))
	assert.False(t, shouldRetry(http.StatusUnauthorized))
}
