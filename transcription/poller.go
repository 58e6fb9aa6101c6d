package transcription

import (
	"context"
	"time"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/logger"
	"github.com/kbukum/sypnna/observability"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollDeadline = 60 * time.Second
)

// Poller waits for a job to reach a terminal state. Each status query is a
// single attempt; a failed query ends the wait.
type Poller struct {
	Interval time.Duration
	Deadline time.Duration

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(time.Duration)

	// OnPoll is called after every status query.
	OnPoll func(ctx context.Context, provider string)
}

// NewPoller returns a Poller using cfg, with defaults for zero values.
func NewPoller(cfg PollConfig) *Poller {
	return &Poller{Interval: cfg.Interval, Deadline: cfg.Deadline}
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Poller) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (p *Poller) bounds() (time.Duration, time.Duration) {
	interval, deadline := p.Interval, p.Deadline
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if deadline <= 0 {
		deadline = DefaultPollDeadline
	}
	return interval, deadline
}

// Wait polls jp until job completes, fails or the deadline passes. The
// elapsed time is measured from the call, which the pipeline makes right
// after job creation. The last sleep is shortened to end on the deadline and
// no query is issued past it. On success the returned job carries the
// result text.
func (p *Poller) Wait(ctx context.Context, jp JobProvider, job *Job) (*Job, error) {
	interval, deadline := p.bounds()
	log := logger.Get("poller").WithContext(ctx).WithFields(logger.Fields(
		logger.FieldProvider, jp.Name(),
		logger.FieldJobID, job.ID,
	))

	ctx, span := observability.StartSpan(ctx, observability.SpanProviderPoll)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProvider, jp.Name())
	observability.SetSpanAttribute(ctx, observability.AttrJobID, job.ID)

	if job.Status == "" {
		job.Status = JobQueued
	}

	start := p.now()
	polls := 0
	for !job.Status.IsTerminal() {
		remaining := deadline - p.now().Sub(start)
		if remaining <= 0 {
			break
		}
		p.sleep(min(interval, remaining))
		if p.now().Sub(start) > deadline {
			break
		}

		current, err := jp.JobStatus(ctx, job.ID)
		polls++
		if p.OnPoll != nil {
			p.OnPoll(ctx, jp.Name())
		}
		if err != nil {
			if !apperrors.HasCode(err, apperrors.ErrCodeStatusQueryFailed) {
				err = apperrors.StatusQueryFailed(jp.Name(), job.ID, err)
			}
			observability.SetSpanError(ctx, err)
			return job, err
		}

		job.Status = current.Status
		if job.Status == JobCompleted {
			job.ResultText = current.ResultText
		}
		if job.Status == JobFailed {
			job.ErrorMessage = current.ErrorMessage
		}
		log.Debug("job status", logger.Fields(logger.FieldStatus, string(job.Status), "poll", polls))
	}
	observability.SetSpanAttribute(ctx, observability.AttrPolls, polls)

	switch job.Status {
	case JobCompleted:
		return job, nil
	case JobFailed:
		err := apperrors.JobFailed(jp.Name(), job.ID, job.ErrorMessage)
		observability.SetSpanError(ctx, err)
		return job, err
	default:
		err := apperrors.Timeout("transcription job").
			WithDetail("job_id", job.ID).
			WithDetail("polls", polls)
		log.Warn("job did not finish before deadline", logger.Fields("deadline", deadline.String(), "polls", polls))
		observability.SetSpanError(ctx, err)
		return job, err
	}
}
