package errors

import (
	stderrors "errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxPublicMessageRunes bounds provider text passed through to clients.
const maxPublicMessageRunes = 200

// ErrorResponse is the JSON structure returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to its wire shape.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.PublicMessage()}
}

// PublicMessage returns the message safe to show a client. Provider text is
// kept only when it is a short, single-line, printable string; configuration
// errors always use the generic message.
func (e *AppError) PublicMessage() string {
	if e.Kind == KindConfiguration || e.Kind == KindInternal {
		return FallbackMessage(e.Code)
	}
	if isReadable(e.Message) {
		return e.Message
	}
	return FallbackMessage(e.Code)
}

func isReadable(msg string) bool {
	msg = strings.TrimSpace(msg)
	if msg == "" || utf8.RuneCountInString(msg) > maxPublicMessageRunes {
		return false
	}
	if strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "[") || strings.HasPrefix(msg, "<") {
		return false
	}
	for _, r := range msg {
		if r == '\n' || r == '\r' || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// From returns err as an AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
