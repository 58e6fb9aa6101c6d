// Package transcription defines the provider capabilities and shared types
// of the transcription pipeline.
//
// Providers come in three shapes:
//
//   - DirectProvider returns a transcript for a URL in one call.
//   - JobProvider accepts uploaded media, creates an asynchronous job and
//     exposes its status; Poller waits for the job to finish.
//   - SpeechProvider transcribes staged media synchronously.
//
// # Backends
//
//   - transcription/supadata: transcript aggregator (direct)
//   - transcription/assemblyai: hosted speech recognition (job)
//   - transcription/whisper: OpenAI speech model (speech)
package transcription
