package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdhaval2785/prakriya/internal/testhelper"
	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/prakriya"
)

func newTestServer(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	store, err := dataset.New(dataset.Options{Dir: dir})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newHandler(prakriya.NewFromStore(store), []string{"https://example.org"}, logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, params url.Values, dst any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path + "?" + params.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestForms(t *testing.T) {
	srv := newTestServer(t, testhelper.DatasetDir(t))

	var body struct {
		Form   string   `json:"form"`
		Field  string   `json:"field"`
		Result []string `json:"result"`
	}
	status := get(t, srv, "/api/forms", url.Values{"form": {"Bavati"}, "field": {"lakara"}}, &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"law"}, body.Result)

	status = get(t, srv, "/api/forms", url.Values{"form": {"भवति"}, "field": {"verb"}, "in": {"devanagari"}, "out": {"iast"}}, &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"bhū"}, body.Result)

	var full struct {
		Result []prakriya.Record `json:"result"`
	}
	status = get(t, srv, "/api/forms", url.Values{"form": {"baBUva"}}, &full)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, full.Result, 2)
	assert.Equal(t, "BU+u~", full.Result[1].Prakriya[1].Form)
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t, testhelper.DatasetDir(t))

	var body struct {
		Root  string              `json:"root"`
		Forms map[string][]string `json:"forms"`
	}
	params := url.Values{"root": {"as"}, "lakara": {"law"}, "purusha": {"praTama"}, "vachana": {"eka"}}
	status := get(t, srv, "/api/generate", params, &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string][]string{"02.0060": {"asti"}, "04.0101": {"asyati"}}, body.Forms)
}

func TestTreeAndInfo(t *testing.T) {
	srv := newTestServer(t, testhelper.DatasetDir(t))

	var tree map[string]prakriya.EntryForms
	status := get(t, srv, "/api/tree", url.Values{"root": {"BU"}}, &tree)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Bavatu", "BavatAt"}, tree["01.0001"].Tenses["low"]["tip"])

	var info map[string]dataset.EntryInfo
	status = get(t, srv, "/api/info", url.Values{"root": {"BU"}, "out": {"devanagari"}}, &info)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "भ्वादि", info["01.0001"].Gana)
}

func TestErrorStatuses(t *testing.T) {
	srv := newTestServer(t, testhelper.DatasetDir(t))

	tests := []struct {
		name   string
		path   string
		params url.Values
		want   int
	}{
		{"missing form", "/api/forms", nil, http.StatusBadRequest},
		{"bad scheme", "/api/forms", url.Values{"form": {"Bavati"}, "out": {"klingon"}}, http.StatusBadRequest},
		{"unknown field", "/api/forms", url.Values{"form": {"Bavati"}, "field": {"colour"}}, http.StatusBadRequest},
		{"unknown form", "/api/forms", url.Values{"form": {"xyzabc"}}, http.StatusNotFound},
		{"missing root", "/api/generate", nil, http.StatusBadRequest},
		{"bad tense", "/api/generate", url.Values{"root": {"BU"}, "lakara": {"xyz"}}, http.StatusBadRequest},
		{"unknown verb", "/api/generate", url.Values{"root": {"nothing"}}, http.StatusNotFound},
		{"no data", "/api/generate", url.Values{"root": {"BU"}, "lakara": {"liw"}, "suffix": {"mas"}}, http.StatusNotFound},
		{"unknown tree root", "/api/tree", url.Values{"root": {"nothing"}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorResponse
			status := get(t, srv, tt.path, tt.params, &body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestUnavailable(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	var body errorResponse
	status := get(t, srv, "/api/forms", url.Values{"form": {"Bavati"}}, &body)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestSchemesAndCORS(t *testing.T) {
	srv := newTestServer(t, testhelper.DatasetDir(t))

	var names []string
	require.Equal(t, http.StatusOK, get(t, srv, "/api/schemes", nil, &names))
	assert.Len(t, names, 14)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/fields", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://example.org", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
