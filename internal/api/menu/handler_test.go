package menu

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMenuRouter(webhookURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(http.DefaultClient, zap.NewNop(), webhookURL)
	r.POST("/process-menu", h.ProcessMenu)
	return r
}

func multipartRequest(t *testing.T, withFile bool, targetLanguage string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if targetLanguage != "" {
		require.NoError(t, w.WriteField("targetLanguage", targetLanguage))
	}
	if withFile {
		part, err := w.CreateFormFile("file", "menu.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-menu", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProcessMenuRequiresFile(t *testing.T) {
	r := newMenuRouter("http://unused.invalid")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, false, "es"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No file provided"}`, w.Body.String())
}

func TestProcessMenuForwardsFormAndRelaysJSON(t *testing.T) {
	var gotLanguage, gotFilename, gotFileBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		gotLanguage = req.FormValue("targetLanguage")
		file, header, err := req.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		b, _ := io.ReadAll(file)
		gotFileBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dishes": [{"name": "paella", "translation": "paella"}]}`))
	}))
	defer upstream.Close()

	r := newMenuRouter(upstream.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, true, "es"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dishes": [{"name": "paella", "translation": "paella"}]}`, w.Body.String())

	// The form reaches the webhook unmodified.
	assert.Equal(t, "es", gotLanguage)
	assert.Equal(t, "menu.jpg", gotFilename)
	assert.Equal(t, "fake-jpeg-bytes", gotFileBody)
}

func TestProcessMenuPassesThroughUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("workflow not active"))
	}))
	defer upstream.Close()

	r := newMenuRouter(upstream.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, true, "fr"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook returned status 502")
	assert.Contains(t, w.Body.String(), "workflow not active")
}

func TestProcessMenuMalformedUpstreamBody(t *testing.T) {
	page := "<html>" + strings.Repeat("x", 600) + "</html>"
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(page))
	}))
	defer upstream.Close()

	r := newMenuRouter(upstream.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, true, "de"))

	// Diagnostic error with a truncated preview, never a raw parse failure.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to process menu image")
	assert.Contains(t, w.Body.String(), "invalid response from webhook")
	assert.NotContains(t, w.Body.String(), page)
}

func TestProcessMenuUnreachableUpstream(t *testing.T) {
	r := newMenuRouter("http://127.0.0.1:1/webhook")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, true, "it"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to process menu image")
}
