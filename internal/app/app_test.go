package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/search"
)

func writeConfig(t *testing.T, baseURL, apiKey string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logFile := filepath.Join(dir, "state", "marquee.log")
	cfgPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("api_key = %q\nbase_url = %q\nrequest_timeout = \"2s\"\nlog_file = %q\nlog_level = \"debug\"\n",
		apiKey, baseURL, logFile)
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, logFile
}

func provider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("s") == "broken":
			_, _ = w.Write([]byte(`{"Response":"True","Search":[{"imdbID":"tt0"}]}`))
		case q.Has("s"):
			_, _ = w.Write([]byte(`{"Response":"True","Search":[{"imdbID":"tt1"}]}`))
		case q.Get("i") == "tt1":
			_, _ = w.Write([]byte(`{"Title":"Heat","Year":"1995","Poster":"N/A","Plot":"Cops and robbers.","Response":"True"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream exploded"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_WritesFragment(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cfgPath, logFile := writeConfig(t, provider(t).URL, "secret")

	var out, stderr bytes.Buffer
	err := Search(context.Background(), Options{ConfigPath: cfgPath, Stderr: &stderr}, "heat", &out)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, `<div class="movie"><h2>Heat (1995)</h2>`) {
		t.Fatalf("fragment = %q", got)
	}
	if !strings.Contains(got, `src="N/A"`) {
		t.Fatalf("fragment missing verbatim poster: %q", got)
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(logged), "search finished") {
		t.Fatalf("log file missing pipeline record:\n%s", logged)
	}
}

func TestSearch_FailureStillWritesMessage(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cfgPath, logFile := writeConfig(t, provider(t).URL, "secret")

	var out, stderr bytes.Buffer
	err := Search(context.Background(), Options{ConfigPath: cfgPath, Stderr: &stderr}, "broken", &out)
	if err == nil {
		t.Fatalf("Search returned nil error for a failed detail fetch")
	}
	if got := strings.TrimSpace(out.String()); got != "<p>"+search.MessageFailed+"</p>" {
		t.Fatalf("fragment = %q", got)
	}

	logged, _ := os.ReadFile(logFile)
	if !strings.Contains(string(logged), "movie search failed") || !strings.Contains(string(logged), "tt0") {
		t.Fatalf("log file missing failure detail:\n%s", logged)
	}
	if strings.Contains(string(logged), "secret") {
		t.Fatalf("api key leaked into log file:\n%s", logged)
	}
}

func TestSearch_EnvKeyOverridesFile(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "secret")
	cfgPath, _ := writeConfig(t, provider(t).URL, "stale")

	var out bytes.Buffer
	if err := Search(context.Background(), Options{ConfigPath: cfgPath, Stderr: &bytes.Buffer{}}, "heat", &out); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Heat (1995)") {
		t.Fatalf("fragment = %q", out.String())
	}
}

func TestSetup_MissingAPIKey(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cfgPath, _ := writeConfig(t, "https://example.invalid/", "")

	err := Search(context.Background(), Options{ConfigPath: cfgPath}, "heat", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "api key missing") {
		t.Fatalf("Search error = %v, want missing api key", err)
	}
}

func TestSetup_InvalidConfig(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("api_key = [\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := Serve(context.Background(), Options{ConfigPath: cfgPath}, "")
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Serve error = %v, want load config failure", err)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cfgPath, _ := writeConfig(t, provider(t).URL, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(ctx, Options{ConfigPath: cfgPath, Stderr: &bytes.Buffer{}}, "127.0.0.1:0")
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve returned %v after cancel", err)
	}
}
