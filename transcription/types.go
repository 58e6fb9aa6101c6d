package transcription

// Request is one accepted transcription call.
type Request struct {
	SourceURL string `json:"url" validate:"required,http_url"`
}

// StagedMedia is media written to local storage for one request. The file
// name carries no format; ContentType and Extension are detected from the
// content.
type StagedMedia struct {
	Path        string
	SizeBytes   int64
	ContentType string
	Extension   string // with leading dot, e.g. ".m4a"
}

// JobStatus is the lifecycle state of a provider-side job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition can occur.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job is a provider-side asynchronous unit of work.
type Job struct {
	ID           string
	Status       JobStatus
	ResultText   string
	ErrorMessage string
}
