package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/testkit"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	testkit.Swap(t, &requestLogger, func(context.Context) *logger.Logger { return &l })
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), buf.String())
	return m
}

func TestAccessLog(t *testing.T) {
	cases := []struct {
		name    string
		slow    time.Duration
		handler http.HandlerFunc
		level   string
		status  float64
		bytes   float64
	}{
		{
			name: "implicit 200 counts bytes",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, "la,")
				_, _ = io.WriteString(w, "sf")
			},
			level: "info", status: 200, bytes: 5,
		},
		{
			name:    "explicit status",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) },
			level:   "info", status: 201,
		},
		{
			name:    "slow request warns",
			slow:    time.Nanosecond,
			handler: func(w http.ResponseWriter, _ *http.Request) { time.Sleep(time.Millisecond) },
			level:   "warn", status: 200,
		},
		{
			name:    "server error",
			slow:    time.Hour,
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			level:   "error", status: 503,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLog(t)
			rr := httptest.NewRecorder()
			AccessLog(tc.slow)(tc.handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

			line := lastLine(t, buf)
			require.Equal(t, tc.level, line["level"])
			require.Equal(t, tc.status, line["status"])
			require.Equal(t, tc.bytes, line["bytes"])
			require.Equal(t, "/api/v1/search", line["path"])
			require.Equal(t, int(tc.status), rr.Code)
		})
	}
}
