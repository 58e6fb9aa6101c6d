package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Kind groups error codes by who can correct them.
type Kind string

const (
	// KindValidation covers user-correctable input errors (4xx).
	KindValidation Kind = "validation"
	// KindConfiguration covers operator-correctable setup errors.
	KindConfiguration Kind = "configuration"
	// KindDownstream covers failures of the source host or a provider.
	KindDownstream Kind = "downstream"
	// KindTimeout covers deadlines exceeded while waiting on a provider.
	KindTimeout Kind = "timeout"
	// KindInternal covers unexpected failures inside the service.
	KindInternal Kind = "internal"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body or URL is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMethodNotAllowed indicates the endpoint was called with the wrong verb.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeNotFound indicates no route matches the request path.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTranscriptUnavailable indicates the provider has no transcript for the source.
	ErrCodeTranscriptUnavailable ErrorCode = "TRANSCRIPT_UNAVAILABLE"
	// ErrCodeUnsupportedSource indicates the URL cannot be resolved into media.
	ErrCodeUnsupportedSource ErrorCode = "UNSUPPORTED_SOURCE"
)

// Configuration errors
const (
	// ErrCodeMissingCredential indicates the provider credential is not set.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeUnknownProvider indicates the configured provider is not registered.
	ErrCodeUnknownProvider ErrorCode = "UNKNOWN_PROVIDER"
)

// Downstream errors
const (
	ErrCodeUnreachableSource         ErrorCode = "UNREACHABLE_SOURCE"
	ErrCodeStageWriteFailed          ErrorCode = "STAGE_WRITE_FAILED"
	ErrCodeProviderHTTP              ErrorCode = "PROVIDER_HTTP_ERROR"
	ErrCodeProviderMalformedResponse ErrorCode = "PROVIDER_MALFORMED_RESPONSE"
	ErrCodeUploadFailed              ErrorCode = "UPLOAD_FAILED"
	ErrCodeJobCreationFailed         ErrorCode = "JOB_CREATION_FAILED"
	ErrCodeStatusQueryFailed         ErrorCode = "STATUS_QUERY_FAILED"
	ErrCodeJobFailed                 ErrorCode = "JOB_FAILED"
)

const (
	// ErrCodeTimeout indicates the job did not finish before the poll deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var codeKinds = map[ErrorCode]Kind{
	ErrCodeInvalidInput:              KindValidation,
	ErrCodeMethodNotAllowed:          KindValidation,
	ErrCodeNotFound:                  KindValidation,
	ErrCodeTranscriptUnavailable:     KindValidation,
	ErrCodeUnsupportedSource:         KindValidation,
	ErrCodeMissingCredential:         KindConfiguration,
	ErrCodeUnknownProvider:           KindConfiguration,
	ErrCodeUnreachableSource:         KindDownstream,
	ErrCodeStageWriteFailed:          KindDownstream,
	ErrCodeProviderHTTP:              KindDownstream,
	ErrCodeProviderMalformedResponse: KindDownstream,
	ErrCodeUploadFailed:              KindDownstream,
	ErrCodeJobCreationFailed:         KindDownstream,
	ErrCodeStatusQueryFailed:         KindDownstream,
	ErrCodeJobFailed:                 KindDownstream,
	ErrCodeTimeout:                   KindTimeout,
	ErrCodeInternal:                  KindInternal,
}

// KindOf returns the kind for an error code. Unknown codes are internal.
func KindOf(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindInternal
}

// fallbackMessages are shown when a provider-supplied message is unsuitable
// for clients.
var fallbackMessages = map[ErrorCode]string{
	ErrCodeInvalidInput:              "The request is invalid.",
	ErrCodeMethodNotAllowed:          "Method not allowed.",
	ErrCodeNotFound:                  "Not found.",
	ErrCodeTranscriptUnavailable:     "No transcript is available for this video.",
	ErrCodeUnsupportedSource:         "The URL does not point to media that can be transcribed.",
	ErrCodeMissingCredential:         "The transcription service is not configured.",
	ErrCodeUnknownProvider:           "The transcription service is not configured.",
	ErrCodeUnreachableSource:         "The video could not be downloaded.",
	ErrCodeStageWriteFailed:          "The video could not be prepared for transcription.",
	ErrCodeProviderHTTP:              "The transcription provider returned an error.",
	ErrCodeProviderMalformedResponse: "Unexpected response from the transcription provider.",
	ErrCodeUploadFailed:              "The media could not be uploaded to the transcription provider.",
	ErrCodeJobCreationFailed:         "The transcription job could not be created.",
	ErrCodeStatusQueryFailed:         "The transcription status could not be retrieved.",
	ErrCodeJobFailed:                 "The transcription failed.",
	ErrCodeTimeout:                   "The transcription is taking longer than expected. Please try again later.",
	ErrCodeInternal:                  "An unexpected error occurred.",
}

// FallbackMessage returns the generic client-facing message for a code.
func FallbackMessage(code ErrorCode) string {
	if m, ok := fallbackMessages[code]; ok {
		return m
	}
	return fallbackMessages[ErrCodeInternal]
}
