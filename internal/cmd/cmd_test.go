package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/shellkit/internal/output"
	"github.com/vnykmshr/shellkit/pkg/loader"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(loader.ResetDefaultForTesting)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shellkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func sdkServer(t *testing.T, wantKey string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("key") != wantKey {
			http.Error(w, "bad key", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("window.initAMap && initAMap()"))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFormatTimeCommand(t *testing.T) {
	out, err := run(t, "format", "time", "--tz", "UTC", "1709294400000", "0")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 12:00:00\n\n", out)

	out, err = run(t, "format", "time", "--tz", "UTC", "--layout", "YY/M/D", "1709294400000")
	require.NoError(t, err)
	assert.Equal(t, "24/3/1\n", out)

	_, err = run(t, "format", "time", "yesterday")
	assert.Error(t, err)

	_, err = run(t, "format", "time", "--tz", "Mars/Olympus", "1")
	assert.Error(t, err)
}

func TestFormatNumberCommand(t *testing.T) {
	out, err := run(t, "format", "number", "1234567", "9876")
	require.NoError(t, err)
	assert.Equal(t, "1,234,567\n9,876\n", out)

	out, err = run(t, "format", "number", "--group", "4", "--delim", " ", "100000000")
	require.NoError(t, err)
	assert.Equal(t, "1 0000 0000\n", out)
}

func TestFormatByteLenCommand(t *testing.T) {
	out, err := run(t, "format", "bytelen", "map", "地图")
	require.NoError(t, err)
	assert.Equal(t, "3\n4\n", out)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-03-01")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "shellkit 1.2.3\n", out)

	out, err = run(t, "version", "--extended")
	require.NoError(t, err)
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Go: go")
}

func TestFetchCommand(t *testing.T) {
	srv, hits := sdkServer(t, "file-key")
	cfg := writeConfig(t, "loader:\n  base_url: "+srv.URL+"/maps\n  key: file-key\n")

	out, err := run(t, "--config", cfg, "fetch", "-o", "json")
	require.NoError(t, err)

	var got output.ResourceSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 29, got.Bytes)
	assert.Equal(t, "fetch", got.Source)
	assert.NotContains(t, got.URL, "file-key")
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchFlagOverridesKey(t *testing.T) {
	srv, _ := sdkServer(t, "flag-key")
	cfg := writeConfig(t, "loader:\n  base_url: "+srv.URL+"/maps\n  key: file-key\n")
	save := filepath.Join(t.TempDir(), "sdk.js")

	out, err := run(t, "--config", cfg, "fetch", "--key", "flag-key", "--save", save)
	require.NoError(t, err)
	assert.Contains(t, out, "Checksum")

	body, err := os.ReadFile(save)
	require.NoError(t, err)
	assert.Equal(t, "window.initAMap && initAMap()", string(body))
}

func TestFetchFailure(t *testing.T) {
	srv, _ := sdkServer(t, "right")
	cfg := writeConfig(t, "loader:\n  base_url: "+srv.URL+"/maps\n  key: wrong\n")

	_, err := run(t, "--config", cfg, "fetch")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "403"), err.Error())
}

func TestBadConfigFile(t *testing.T) {
	cfg := writeConfig(t, "loader:\n  base_url: not-a-url\n")
	_, err := run(t, "--config", cfg, "fetch")
	assert.Error(t, err)

	// version does not read configuration
	_, err = run(t, "--config", cfg, "version")
	assert.NoError(t, err)
}
