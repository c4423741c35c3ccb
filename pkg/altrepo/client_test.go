package altrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testListing = `{
	"request_args": {"arch": "x86_64"},
	"length": 4,
	"packages": [
		{"name": "bash", "epoch": 0, "version": "5.2", "release": "alt1", "arch": "x86_64"},
		{"name": "curl", "epoch": 1, "version": "8.9.1", "release": "alt2", "arch": "x86_64"},
		{"name": "", "epoch": 0, "version": "1.0", "release": "alt1", "arch": "x86_64"},
		{"name": "stray", "epoch": 0, "version": "1.0", "release": "alt1", "arch": "aarch64"}
	]
}`

func TestClient_Branch(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sisyphus", r.URL.Path)
		assert.Equal(t, "x86_64", r.URL.Query().Get("arch"))
		_, _ = w.Write([]byte(testListing))
	}))
	defer ts.Close()

	export, err := NewClient(ts.URL).Branch(ctx, "sisyphus", "x86_64")
	require.NoError(t, err)

	// the empty-name and wrong-arch entries must be gone
	assert.EqualValues(t, 2, export.Length)
	require.Len(t, export.Packages, 2)
	assert.Equal(t, "bash", export.Packages[0].Name)
	assert.EqualValues(t, 1, export.Packages[1].Epoch)
}

func TestClient_Branch_httpError(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such branch", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).Branch(ctx, "nope", "x86_64")
	assert.ErrorContains(t, err, "404")
}

func TestClient_Branch_badPayload(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).Branch(ctx, "sisyphus", "x86_64")
	assert.ErrorContains(t, err, "decoding branch listing")
}

func TestBranchExport_Records(t *testing.T) {
	export := &BranchExport{
		Packages: []Package{
			{Name: "bash", Epoch: 2, Version: "5.2", Release: "alt1", Arch: "x86_64"},
		},
	}
	records := export.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "bash-2:5.2-alt1", records[0].String())
}
