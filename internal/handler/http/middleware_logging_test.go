package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithLogBuffer attaches a logger writing JSON lines into buf.
func requestWithLogBuffer(method, path string, buf *bytes.Buffer) *http.Request {
	l := zerolog.New(buf)
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(l.WithContext(req.Context()))
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		handler   http.HandlerFunc
		wantLevel string
		status    float64
		size      float64
	}{
		{
			name:   "successful login",
			method: http.MethodPost,
			path:   "/api/auth/login",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success":true}`))
			},
			wantLevel: "info",
			status:    200,
			size:      16,
		},
		{
			name:   "rejected profile",
			method: http.MethodGet,
			path:   "/api/auth/profile",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantLevel: "info",
			status:    401,
		},
		{
			name:   "server error",
			method: http.MethodPost,
			path:   "/api/auth/signup",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantLevel: "error",
			status:    500,
		},
		{
			name:      "empty handler logs 200",
			method:    http.MethodPost,
			path:      "/api/auth/logout",
			handler:   func(http.ResponseWriter, *http.Request) {},
			wantLevel: "info",
			status:    200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()

			withLogging(tt.handler).ServeHTTP(rec, requestWithLogBuffer(tt.method, tt.path, &buf))

			line := decodeLogLine(t, &buf)
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.method, line["method"])
			assert.Equal(t, tt.path, line["uri"])
			assert.Equal(t, tt.status, line["status"])
			assert.Equal(t, tt.size, line["size"])
			assert.Contains(t, line, "duration")
			assert.Contains(t, line, "remote_addr")
		})
	}
}

func TestWithLogging_DoesNotChangeResponse(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	withLogging(next).ServeHTTP(rec, requestWithLogBuffer(http.MethodPost, "/api/auth/signup", &buf))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestWithLogging_WithoutContextLogger(t *testing.T) {
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.NotPanics(t, func() {
		withLogging(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithLogging_PanicPropagates(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), requestWithLogBuffer(http.MethodGet, "/", &buf))
	})
}

func TestWithLogging_Concurrent(t *testing.T) {
	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	l := zerolog.New(zerolog.SyncWriter(&lockedWriter{mu: &mu, w: &buf}))
	handler := withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			req = req.WithContext(l.WithContext(req.Context()))
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, bytes.Count(buf.Bytes(), []byte("\n")))
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
