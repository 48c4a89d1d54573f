package validation_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsafe/intake/apps/server/internal/platform/validation"
	"github.com/crewsafe/intake/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mw, err := validation.New(schemas.OpenAPISpec)
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	// Register a catch-all so Gin doesn't 404 before the middleware runs.
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// ─── upload ──────────────────────────────────────────────────────────────────

func TestUpload_ValidMultipart_Passes(t *testing.T) {
	r := newRouter(t)

	body, contentType := multipartBody(t, "submission", "report.csv", "a,b\n1,2\n")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload_MissingFileField_Returns400(t *testing.T) {
	r := newRouter(t)

	body, contentType := multipartBody(t, "attachment", "report.csv", "a,b\n")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestUpload_EmptyBody_Returns400(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ─── other routes ────────────────────────────────────────────────────────────

func TestHealthz_Passes(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute_PassesThrough(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/debug/not-in-spec", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ─── New() with invalid document ─────────────────────────────────────────────

func TestNew_InvalidDocument_ReturnsError(t *testing.T) {
	_, err := validation.New([]byte(`not yaml`))
	assert.Error(t, err)
}
