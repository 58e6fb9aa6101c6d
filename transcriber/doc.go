// Package transcriber runs one transcription request end to end: build the
// configured provider, dispatch on its capability, stage media when the
// provider needs bytes, poll job providers, and shape the result.
//
// Every failure is converted to an *errors.AppError, logged once, and
// returned inside an Outcome. Staged files are released on every exit path.
package transcriber
