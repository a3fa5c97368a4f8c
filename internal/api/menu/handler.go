package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// previewLimit caps how much of a malformed upstream body makes it into the
// diagnostic response.
const previewLimit = 500

type Handler struct {
	client     *http.Client
	log        *zap.Logger
	webhookURL string
}

func NewHandler(client *http.Client, log *zap.Logger, webhookURL string) *Handler {
	if client == nil {
		client = http.DefaultClient
	}
	return &Handler{client: client, log: log, webhookURL: webhookURL}
}

// ProcessMenu forwards the multipart form (menu photo + target language) to
// the OCR/translation webhook and relays its JSON response.
func (h *Handler) ProcessMenu(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	if len(form.File["file"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	h.log.Info("forwarding menu image",
		zap.String("target_language", c.PostForm("targetLanguage")),
		zap.String("webhook_url", h.webhookURL))

	body, contentType, err := encodeForm(form)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process menu image", "details": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.webhookURL, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process menu image", "details": err.Error()})
		return
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Error("webhook forward failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process menu image", "details": err.Error()})
		return
	}
	defer resp.Body.Close()

	// Read as text first: the upstream is untrusted and has returned HTML
	// error pages before, which must not surface as a parse panic.
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process menu image", "details": err.Error()})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.log.Warn("webhook returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", preview(respBody)))
		c.JSON(resp.StatusCode, gin.H{
			"error":   fmt.Sprintf("Webhook returned status %d", resp.StatusCode),
			"details": string(respBody),
		})
		return
	}

	if !json.Valid(respBody) {
		h.log.Error("webhook returned unparseable body", zap.String("body", preview(respBody)))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process menu image",
			"details": "invalid response from webhook: " + preview(respBody),
		})
		return
	}

	c.Data(http.StatusOK, "application/json", respBody)
}

// encodeForm rebuilds the inbound multipart form unmodified for the
// outbound request.
func encodeForm(form *multipart.Form) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, values := range form.Value {
		for _, v := range values {
			if err := w.WriteField(field, v); err != nil {
				return nil, "", err
			}
		}
	}

	for field, files := range form.File {
		for _, fh := range files {
			part, err := w.CreateFormFile(field, fh.Filename)
			if err != nil {
				return nil, "", err
			}
			src, err := fh.Open()
			if err != nil {
				return nil, "", err
			}
			_, err = io.Copy(part, src)
			src.Close()
			if err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func preview(b []byte) string {
	if len(b) > previewLimit {
		return string(b[:previewLimit]) + "..."
	}
	return string(b)
}
