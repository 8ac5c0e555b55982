package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakePlatform serves the subset of the Radarr API strikearr uses.
type fakePlatform struct {
	mu      sync.Mutex
	apiKey  string
	queue   string
	deleted []string
}

func (p *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Api-Key") != p.apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case r.URL.Path == "/api/v3/health":
		_, _ = w.Write([]byte("[]"))
	case r.URL.Path == "/api/v3/queue":
		_, _ = w.Write([]byte(p.queue))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/v3/queue/"):
		p.deleted = append(p.deleted, strings.TrimPrefix(r.URL.Path, "/api/v3/queue/"))
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakePlatform) Deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deleted...)
}

type cliTestEnv struct {
	platform   *fakePlatform
	server     *httptest.Server
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, apiKey string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"BASEURL", "APIKEY", "PLATFORM", "SIZE_THRESHOLD", "TIME_THRESHOLD", "STRIKE_THRESHOLD", "AGGRESSIVE_STRIKES", "AGGRESIVE_STRIKES", "INTERVAL"} {
		t.Setenv(key, "")
	}

	platform := &fakePlatform{apiKey: "secret", queue: `{"records":[]}`}
	server := httptest.NewServer(platform)
	t.Cleanup(server.Close)

	configPath := filepath.Join(base, "strikearr.toml")
	content := fmt.Sprintf(`[platform]
name = "radarr"
url = %q
api_key = %q

[thresholds]
size = "50 GB"
time = "01:00:00"
strikes = 2

[ledger]
path = %q

[paths]
state_dir = %q
log_dir = %q
`, server.URL, apiKey, filepath.Join(base, "state", "strikes.db"), filepath.Join(base, "state"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{platform: platform, server: server, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
