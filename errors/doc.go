// Package errors provides the service's unified error type.
//
// Every failure of the transcription pipeline is an *AppError carrying a
// machine-readable code, a kind (validation, configuration, downstream,
// timeout), the HTTP status it maps to, and a client-safe message.
package errors
