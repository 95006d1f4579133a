//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/puesto-lab/puesto/internal/catalog"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/puesto-lab/puesto/internal/core/storage/xlsx"
	"github.com/puesto-lab/puesto/internal/eventos"
	"github.com/puesto-lab/puesto/internal/projection"
	"github.com/puesto-lab/puesto/internal/server"
	"github.com/puesto-lab/puesto/internal/ventas"
	"github.com/stretchr/testify/require"
)

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	store      *xlsx.Store
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case <-h.serverDone:
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}
}

// startHarness runs the full HTTP stack over a spreadsheet data dir in t.TempDir().
func startHarness(t *testing.T) *integrationHarness {
	t.Helper()

	root := t.TempDir()
	store, err := xlsx.NewStore(filepath.Join(root, "data"), "")
	require.NoError(t, err)
	for _, table := range storage.AllTables {
		require.NoError(t, store.Ensure(context.Background(), table))
	}

	images, err := catalog.NewImageStore(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	port := freePort(t)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	httpServer := server.New(addr, store, server.Options{
		Mode:          "release",
		MaxBodySizeMB: 1,
		UploadsDir:    images.Dir(),
	})
	catalog.NewService(store, images).RegisterRoutes(httpServer.Engine)
	eventos.NewService(store).RegisterRoutes(httpServer.Engine)
	ventas.NewService(store, ventas.Options{}).RegisterRoutes(httpServer.Engine)
	projection.NewService(store, 5).RegisterRoutes(httpServer.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() { serverDone <- httpServer.Run(ctx) }()

	baseURL := "http://" + addr
	waitForHealthy(t, baseURL)

	return &integrationHarness{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		store:      store,
		cancel:     cancel,
		serverDone: serverDone,
	}
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not become healthy at %s", baseURL)
}

func (h *integrationHarness) do(t *testing.T, method, path string, payload interface{}) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.baseURL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

func (h *integrationHarness) getJSON(t *testing.T, path string, out interface{}) {
	t.Helper()

	status, body := h.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, out))
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
