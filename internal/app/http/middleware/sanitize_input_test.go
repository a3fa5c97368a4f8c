package middleware

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
)

func newSanitizeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeJSONInput())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})
	return r
}

func TestSanitizeStripsMarkupFromStrings(t *testing.T) {
	r := newSanitizeRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo",
		bytes.NewReader([]byte(`{"priceId": "<script>alert(1)</script>price_123"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
	assert.Contains(t, w.Body.String(), "price_123")
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	r := newSanitizeRouter()

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSanitizeSkipsMultipartBodies(t *testing.T) {
	r := newSanitizeRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("targetLanguage", "es"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/echo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Multipart passes through untouched even though its body is not JSON.
	assert.Equal(t, http.StatusOK, w.Code)
}
