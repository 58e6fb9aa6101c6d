package transcription

import (
	"context"

	"github.com/kbukum/sypnna/provider"
)

// Provider is the base interface of every transcription backend. A backend
// additionally implements exactly one of the capability interfaces below.
type Provider interface {
	provider.Provider
}

// DirectProvider resolves a source URL into a transcript in one call.
type DirectProvider interface {
	Provider
	FetchTranscript(ctx context.Context, sourceURL string) (string, error)
}

// JobProvider transcribes through an asynchronous job.
type JobProvider interface {
	Provider
	// Upload sends staged media and returns an opaque reference usable as
	// the job's audio URL.
	Upload(ctx context.Context, media StagedMedia) (string, error)
	// CreateJob starts a job for the given audio URL.
	CreateJob(ctx context.Context, audioURL string) (*Job, error)
	// JobStatus queries the current state of a job.
	JobStatus(ctx context.Context, jobID string) (*Job, error)
	// ForwardsURL reports whether the source URL is submitted as the audio
	// URL directly, skipping locate, stage and upload.
	ForwardsURL() bool
}

// SpeechProvider transcribes staged media synchronously.
type SpeechProvider interface {
	Provider
	TranscribeMedia(ctx context.Context, media StagedMedia) (string, error)
}

// Mode names the capability a provider offers.
type Mode string

const (
	ModeDirect  Mode = "direct"
	ModeJob     Mode = "job"
	ModeSpeech  Mode = "speech"
	ModeUnknown Mode = "unknown"
)

// ModeOf returns the capability p implements.
func ModeOf(p Provider) Mode {
	switch p.(type) {
	case DirectProvider:
		return ModeDirect
	case JobProvider:
		return ModeJob
	case SpeechProvider:
		return ModeSpeech
	default:
		return ModeUnknown
	}
}
