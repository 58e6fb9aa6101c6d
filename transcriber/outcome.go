package transcriber

import (
	"net/http"

	apperrors "github.com/kbukum/sypnna/errors"
)

// OutcomeOK is the metrics label for a successful request.
const OutcomeOK = "ok"

// Response is the success body.
type Response struct {
	Transcription string `json:"transcription"`
}

// Outcome is the result of one request: either a transcript or an error.
type Outcome struct {
	Text string
	Err  *apperrors.AppError
}

// Success returns a successful outcome.
func Success(text string) Outcome {
	return Outcome{Text: text}
}

// Failure returns a failed outcome. Plain errors become INTERNAL_ERROR.
func Failure(err error) Outcome {
	return Outcome{Err: apperrors.From(err)}
}

// OK reports whether the outcome carries a transcript.
func (o Outcome) OK() bool { return o.Err == nil }

// Label returns OutcomeOK or the error code.
func (o Outcome) Label() string {
	if o.OK() {
		return OutcomeOK
	}
	return string(o.Err.Code)
}

// Shape maps an outcome to an HTTP status and JSON body.
func Shape(o Outcome) (int, any) {
	if o.OK() {
		return http.StatusOK, Response{Transcription: o.Text}
	}
	return o.Err.HTTPStatus, o.Err.ToResponse()
}
