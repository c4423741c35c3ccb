package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/branchdiff/branchdiff/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingServer(t *testing.T) *httptest.Server {
	listings := map[string]string{
		"/sisyphus": `{"length": 3, "packages": [
			{"name": "bash", "version": "5.2", "release": "alt2", "arch": "x86_64"},
			{"name": "zlib", "version": "1.3", "release": "alt1", "arch": "x86_64"},
			{"name": "curl", "epoch": 1, "version": "8.9.1", "release": "alt1", "arch": "x86_64"}
		]}`,
		"/p10": `{"length": 3, "packages": [
			{"name": "bash", "version": "5.2", "release": "alt1", "arch": "x86_64"},
			{"name": "nano", "version": "7.2", "release": "alt1", "arch": "x86_64"},
			{"name": "curl", "epoch": 1, "version": "8.9.1", "release": "alt1", "arch": "x86_64"}
		]}`,
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := listings[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func runDiff(t *testing.T, args ...string) error {
	t.Helper()
	command.SetArgs(append([]string{"diff"}, args...))
	return command.Execute()
}

func TestDiff(t *testing.T) {
	ts := listingServer(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	err := runDiff(t,
		"--url", ts.URL,
		"--branch1", "sisyphus",
		"--branch2", "p10",
		"--arch", "x86_64",
		"--format", "json",
		"--snapshot1", "",
		"--snapshot2", "",
		"--output-file", outPath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out report.Report
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "sisyphus", out.Branch1)
	assert.Equal(t, "p10", out.Branch2)
	assert.Equal(t, []string{"zlib-1.3-alt1"}, out.OnlyInFirst)
	assert.Equal(t, []string{"nano-7.2-alt1"}, out.OnlyInSecond)
	require.Len(t, out.Differing, 1)
	assert.Equal(t, "bash", out.Differing[0].Name)
	assert.Equal(t, "sisyphus", out.Differing[0].Newer)
}

func TestDiff_fromSnapshots(t *testing.T) {
	dir := t.TempDir()
	snap1 := filepath.Join(dir, "one.json")
	snap2 := filepath.Join(dir, "two.json")
	require.NoError(t, os.WriteFile(snap1, []byte(`{"packages": [{"name": "pkg", "version": "1.0", "release": "1", "arch": "x86_64"}]}`), 0644))
	require.NoError(t, os.WriteFile(snap2, []byte(`{"packages": [{"name": "pkg", "version": "1.0", "release": "2", "arch": "x86_64"}]}`), 0644))

	outPath := filepath.Join(dir, "report.json")
	err := runDiff(t,
		"--url", "http://localhost:1",
		"--branch1", "sisyphus",
		"--branch2", "p10",
		"--arch", "x86_64",
		"--format", "json",
		"--snapshot1", snap1,
		"--snapshot2", snap2,
		"--output-file", outPath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out report.Report
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Differing, 1)
	assert.Equal(t, "p10", out.Differing[0].Newer)
}

func TestDiff_sameBranch(t *testing.T) {
	err := runDiff(t,
		"--url", "http://localhost:1",
		"--branch1", "p10",
		"--branch2", "p10",
		"--arch", "x86_64",
		"--format", "json",
		"--output-file", "",
		"--snapshot1", "",
		"--snapshot2", "",
	)
	assert.ErrorContains(t, err, "branches must differ")
}

func TestDiff_fetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(ts.Close)

	err := runDiff(t,
		"--url", ts.URL,
		"--branch1", "sisyphus",
		"--branch2", "p10",
		"--arch", "x86_64",
		"--format", "json",
		"--output-file", "",
		"--snapshot1", "",
		"--snapshot2", "",
	)
	assert.ErrorContains(t, err, fmt.Sprint(http.StatusNotFound))
}
