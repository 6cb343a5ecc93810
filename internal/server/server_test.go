package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typego/internal/phrases"
)

func testSource() phrases.FSSource {
	return phrases.FSSource{FS: fstest.MapFS{
		"en.json": {Data: []byte(`{"phrases": ["hello world", "good day"]}`)},
		"ua.json": {Data: []byte(`{"phrases": ["привіт"]}`)},
	}}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPhrasesByLang(t *testing.T) {
	h := NewHandler(testSource(), nil)

	rec := get(t, h, "/api/phrases?lang=ua")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.JSONEq(t, `{"phrases":["привіт"]}`, rec.Body.String())
}

func TestUnknownLangDefaultsToEnglish(t *testing.T) {
	h := NewHandler(testSource(), nil)
	for _, target := range []string{"/api/phrases?lang=de", "/api/phrases"} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code)
		var body phrases.File
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, []string{"hello world", "good day"}, body.Phrases)
	}
}

func TestMissingFile(t *testing.T) {
	h := NewHandler(phrases.FSSource{FS: fstest.MapFS{}}, nil)
	rec := get(t, h, "/api/phrases?lang=en")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Could not load phrases"}`, rec.Body.String())
}

func TestMalformedFile(t *testing.T) {
	h := NewHandler(phrases.FSSource{FS: fstest.MapFS{
		"en.json": {Data: []byte(`{"phrases": [`)},
	}}, nil)
	rec := get(t, h, "/api/phrases?lang=en")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Invalid phrases file"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h := NewHandler(testSource(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/phrases", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPreflight(t *testing.T) {
	h := NewHandler(testSource(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/phrases", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, NewHandler(testSource(), nil), nil)
	}()

	src := phrases.NewHTTPSource("http://" + ln.Addr().String())
	list, err := src.Phrases(context.Background(), "en")
	require.NoError(t, err)
	require.Len(t, list, 2)

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/phrases?lang=ua")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Contains(t, string(body), "привіт")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
