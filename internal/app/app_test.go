package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/internal/config"
	"pdxpulse/internal/shared/testutil"
	"pdxpulse/pkg/contracts/events"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Security.RateLimit.Enabled = false
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *httptest.Server) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	application, err := NewApplication(cfg, logger)
	require.NoError(t, err)

	application.WebSocketHub.Start()
	srv := httptest.NewServer(application.Router)
	t.Cleanup(func() {
		srv.Close()
		application.WebSocketHub.Stop()
		_ = application.OTelProviders.Shutdown(context.Background())
	})
	return application, srv
}

func upload(t *testing.T, baseURL, name, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(baseURL+"/api/dataset", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readMessage(t *testing.T, conn *websocket.Conn) events.WebSocketMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg events.WebSocketMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestApplication_Routes(t *testing.T) {
	_, srv := newTestApp(t, testConfig())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", path: "/healthz", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "version", path: "/api/version", wantStatus: http.StatusOK, wantBody: `"api_version":"v1"`},
		{name: "summary without dataset", path: "/api/summary", wantStatus: http.StatusNotFound, wantBody: "DATASET_NOT_FOUND"},
		{name: "dataset state", path: "/api/dataset", wantStatus: http.StatusOK, wantBody: `"loaded":false`},
		{name: "trailing slash", path: "/api/dataset/", wantStatus: http.StatusOK, wantBody: `"loaded":false`},
		{name: "unknown route", path: "/nope", wantStatus: http.StatusNotFound, wantBody: `"status":404`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			assert.Contains(t, string(body), tt.wantBody)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestApplication_MiddlewareScope(t *testing.T) {
	_, srv := newTestApp(t, testConfig())

	tests := []struct {
		name          string
		path          string
		wantFrameOpts string
	}{
		{name: "health outside api group", path: "/healthz/", wantFrameOpts: ""},
		{name: "api group", path: "/api/version", wantFrameOpts: "DENY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, tt.wantFrameOpts, resp.Header.Get("X-Frame-Options"))
		})
	}
}

func TestApplication_Metrics(t *testing.T) {
	_, srv := newTestApp(t, testConfig())

	resp, err := http.Get(srv.URL + "/api/summary")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests")
}

func TestApplication_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.MetricsEnabled = false
	_, srv := newTestApp(t, cfg)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestApplication_UploadBroadcastsSnapshot(t *testing.T) {
	_, srv := newTestApp(t, testConfig())

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, events.MessageTypeConnect, readMessage(t, conn).Type)

	resp := upload(t, srv.URL, "pdx.csv", testutil.SampleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	msg := readMessage(t, conn)
	require.Equal(t, events.MessageTypeDashboardSnapshot, msg.Type)
	raw, err := json.Marshal(msg.Data)
	require.NoError(t, err)
	var snap events.DashboardSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "pdx.csv", snap.FileName)
	assert.Equal(t, 3, snap.Rows)
	assert.Equal(t, "dataset_loaded", snap.Event)

	summary, err := http.Get(srv.URL + "/api/summary")
	require.NoError(t, err)
	defer summary.Body.Close()
	assert.Equal(t, http.StatusOK, summary.StatusCode)
}

func TestApplication_UploadRejected(t *testing.T) {
	_, srv := newTestApp(t, testConfig())

	resp := upload(t, srv.URL, "pdx.csv", testutil.SampleMissingLongitudeCSV)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var problem map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, "PDX_LNG", problem["field"])
}

func TestApplication_CORS(t *testing.T) {
	cfg := testConfig()
	cfg.Security.AllowedOrigins = []string{"http://dash.example"}
	_, srv := newTestApp(t, cfg)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/summary", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://dash.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://dash.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestApplication_RunAndShutdown(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	application, err := NewApplication(testConfig(), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool { return application.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	resp, err := http.Get("http://" + application.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not shut down")
	}
}
