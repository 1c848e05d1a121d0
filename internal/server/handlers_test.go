package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lattice/internal/config"
	"github.com/MeKo-Tech/lattice/internal/layout"
	"github.com/MeKo-Tech/lattice/internal/pipeline"
	"github.com/MeKo-Tech/lattice/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	pl, err := pipeline.New(pipeline.DefaultConfig())
	require.NoError(t, err)
	return NewServer(config.Default().Server, pl)
}

func pageResultJSON(t *testing.T, res pipeline.PageResult) []byte {
	t.Helper()
	data, err := json.Marshal(res)
	require.NoError(t, err)
	return data
}

// multipartBody builds a request body with a results part and an
// optional image file part.
func multipartBody(t *testing.T, results []byte, imagePath string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("results", "results.json")
	require.NoError(t, err)
	_, err = fw.Write(results)
	require.NoError(t, err)

	if imagePath != "" {
		fw, err = mw.CreateFormFile("image", "page.png")
		require.NoError(t, err)
		img, err := os.Open(imagePath)
		require.NoError(t, err)
		_, err = io.Copy(fw, img)
		require.NoError(t, err)
		require.NoError(t, img.Close())
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestHandleHealthMethodNotAllowed(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePageWithoutImage(t *testing.T) {
	srv := testServer(t)
	results := pageResultJSON(t, pipeline.PageResult{
		Page: layoutPage(1, ""),
		Words: testutil.BuildWords(
			testutil.Block(testutil.Para(testutil.Line(testutil.W("hello", 10, 10, 60, 24)))),
		),
	})
	body, contentType := multipartBody(t, results, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/page", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), ">hello</span>")
	assert.NotContains(t, rec.Body.String(), "<table")
}

func TestHandlePageWithGridImage(t *testing.T) {
	srv := testServer(t)
	imagePath := testutil.GridPage(t, 400, 300, testutil.GridSpec{
		Cols:      []int{50, 150, 250},
		Rows:      []int{50, 120, 190},
		Thickness: 3,
	})
	results := pageResultJSON(t, pipeline.PageResult{
		Page: layoutPage(1, ""),
		Words: testutil.BuildWords(
			testutil.Block(testutil.Para(testutil.Line(
				testutil.W("A", 90, 75, 110, 95),
				testutil.W("B", 190, 75, 210, 95),
			))),
		),
	})
	body, contentType := multipartBody(t, results, imagePath)

	req := httptest.NewRequest(http.MethodPost, "/v1/page", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	markup := rec.Body.String()
	assert.Contains(t, markup, "<table ")
	assert.Contains(t, markup, ">A</span>")
	assert.Contains(t, markup, ">B</span>")
}

func TestHandlePageMissingResults(t *testing.T) {
	srv := testServer(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/page", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing results part")
}

func TestHandlePageNilWords(t *testing.T) {
	srv := testServer(t)
	body, contentType := multipartBody(t, []byte(`{"page": {"number": 1}}`), "")

	req := httptest.NewRequest(http.MethodPost, "/v1/page", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlePageMalformedResults(t *testing.T) {
	srv := testServer(t)
	body, contentType := multipartBody(t, []byte(`{`), "")

	req := httptest.NewRequest(http.MethodPost, "/v1/page", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePageMethodNotAllowed(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/page", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflights(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/page", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func layoutPage(number int, imagePath string) layout.Page {
	return layout.Page{Number: number, ImagePath: imagePath, Width: 600, Height: 400}
}
