package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Kind is the error category derived from Code.
	Kind Kind `json:"kind"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for logs.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError; kind and HTTP status are derived from code.
func New(code ErrorCode, message string) *AppError {
	if message == "" {
		message = FallbackMessage(code)
	}
	return &AppError{
		Code:       code,
		Kind:       KindOf(code),
		Message:    message,
		HTTPStatus: statusFor(code),
	}
}

func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeNotFound:
		return http.StatusNotFound
	}
	if KindOf(code) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// --- Input errors ---

// InvalidInput creates an error for a bad request field.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// MethodNotAllowed creates an error for a request made with the wrong verb.
func MethodNotAllowed(method string) *AppError {
	return New(ErrCodeMethodNotAllowed, "").WithDetail("method", method)
}

// NotFound creates an error for a missing resource.
func NotFound(resource, id string) *AppError {
	return New(ErrCodeNotFound, "").WithDetail(resource, id)
}

// TranscriptUnavailable creates an error for a source without a transcript.
func TranscriptUnavailable(reason string) *AppError {
	return New(ErrCodeTranscriptUnavailable, reason)
}

// UnsupportedSource creates an error for a URL that cannot be turned into media.
func UnsupportedSource(sourceURL, reason string) *AppError {
	return New(ErrCodeUnsupportedSource, "").
		WithDetails(map[string]any{"source_url": sourceURL, "reason": reason})
}

// --- Configuration errors ---

// MissingCredential creates an error for an absent provider credential.
// The variable name is kept in Details for logs only.
func MissingCredential(provider, envVar string) *AppError {
	return New(ErrCodeMissingCredential, "").
		WithDetails(map[string]any{"provider": provider, "env": envVar})
}

// UnknownProvider creates an error for a provider name with no factory.
func UnknownProvider(name string) *AppError {
	return New(ErrCodeUnknownProvider, "").WithDetail("provider", name)
}

// --- Downstream errors ---

// UnreachableSource creates an error for a source host that did not answer
// with a success status.
func UnreachableSource(sourceURL string, status int) *AppError {
	e := New(ErrCodeUnreachableSource, "").WithDetail("source_url", sourceURL)
	if status > 0 {
		e.WithDetail("status", status)
	}
	return e
}

// StageWrite creates an error for a failed write to the staging area.
func StageWrite(path string, cause error) *AppError {
	return New(ErrCodeStageWriteFailed, "").WithDetail("path", path).WithCause(cause)
}

// ProviderHTTP creates an error for a non-success provider response.
// message is the provider's own text, possibly empty.
func ProviderHTTP(provider string, status int, message string, body []byte) *AppError {
	e := New(ErrCodeProviderHTTP, message).
		WithDetails(map[string]any{"provider": provider, "status": status})
	if len(body) > 0 {
		e.WithDetail("body", string(body))
	}
	return e
}

// ProviderMalformedResponse creates an error for a provider payload that
// lacks the expected fields.
func ProviderMalformedResponse(provider string, body []byte) *AppError {
	e := New(ErrCodeProviderMalformedResponse, "").WithDetail("provider", provider)
	if len(body) > 0 {
		e.WithDetail("body", string(body))
	}
	return e
}

// UploadFailed creates an error for a failed media upload.
func UploadFailed(provider string, cause error) *AppError {
	return New(ErrCodeUploadFailed, "").WithDetail("provider", provider).WithCause(cause)
}

// JobCreationFailed creates an error for a rejected job submission.
func JobCreationFailed(provider string, cause error) *AppError {
	return New(ErrCodeJobCreationFailed, "").WithDetail("provider", provider).WithCause(cause)
}

// StatusQueryFailed creates an error for a failed job status query.
func StatusQueryFailed(provider, jobID string, cause error) *AppError {
	return New(ErrCodeStatusQueryFailed, "").
		WithDetails(map[string]any{"provider": provider, "job_id": jobID}).
		WithCause(cause)
}

// JobFailed creates an error for a job the provider reported as failed.
func JobFailed(provider, jobID, message string) *AppError {
	return New(ErrCodeJobFailed, message).
		WithDetails(map[string]any{"provider": provider, "job_id": jobID})
}

// Timeout creates an error for a job that did not reach a terminal state
// before the deadline.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "").WithDetail("operation", operation)
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "").WithCause(cause)
}
