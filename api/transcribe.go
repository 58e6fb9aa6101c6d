package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/server"
	"github.com/kbukum/sypnna/transcriber"
	"github.com/kbukum/sypnna/transcription"
	"github.com/kbukum/sypnna/validation"
)

// GeneratePath is the transcription endpoint.
const GeneratePath = "/api/generate"

const missingURLMessage = "A video URL is required."

// Transcriber runs one transcription request.
type Transcriber interface {
	Transcribe(ctx context.Context, req transcription.Request) transcriber.Outcome
}

// TranscribeHandler serves POST /api/generate.
type TranscribeHandler struct {
	svc Transcriber
}

// NewTranscribeHandler creates a TranscribeHandler.
func NewTranscribeHandler(svc Transcriber) *TranscribeHandler {
	return &TranscribeHandler{svc: svc}
}

// Register mounts the handler for every method so that wrong verbs get the
// endpoint's own 405 body.
func (h *TranscribeHandler) Register(r gin.IRoutes) {
	r.Any(GeneratePath, h.Generate)
}

// Generate validates the body and runs the transcription. Nothing downstream
// is called unless the request is a POST with a usable url.
func (h *TranscribeHandler) Generate(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		server.RespondWithError(c, apperrors.MethodNotAllowed(c.Request.Method))
		return
	}

	req, err := decodeRequest(c.Request.Body)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	status, body := transcriber.Shape(h.svc.Transcribe(c.Request.Context(), req))
	c.JSON(status, body)
}

// decodeRequest reads {"url": "..."}. The url must be present, a string and
// an http(s) URL once trimmed.
func decodeRequest(body io.Reader) (transcription.Request, error) {
	var req transcription.Request
	if body == nil {
		return req, apperrors.InvalidInput("url", missingURLMessage)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, apperrors.InvalidInput("", "The request body is too large.").WithCause(err)
		}
		if errors.Is(err, io.EOF) {
			return req, apperrors.InvalidInput("url", missingURLMessage)
		}
		return req, apperrors.InvalidInput("", "The request body must be a JSON object.").WithCause(err)
	}

	field, ok := raw["url"]
	if !ok || string(field) == "null" {
		return req, apperrors.InvalidInput("url", missingURLMessage)
	}
	var sourceURL string
	if err := json.Unmarshal(field, &sourceURL); err != nil {
		return req, apperrors.InvalidInput("url", "The url field must be a string.")
	}
	req.SourceURL = strings.TrimSpace(sourceURL)
	if req.SourceURL == "" {
		return req, apperrors.InvalidInput("url", missingURLMessage)
	}
	if err := validation.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}
