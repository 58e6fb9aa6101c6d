package transcriber

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/logger"
	"github.com/kbukum/sypnna/media"
	"github.com/kbukum/sypnna/observability"
	"github.com/kbukum/sypnna/provider"
	"github.com/kbukum/sypnna/transcription"
)

const defaultFetchTimeout = 5 * time.Minute

// Service runs transcription requests against the configured provider.
type Service struct {
	cfg          transcription.Config
	registry     *transcription.Registry
	locator      media.Locator
	stager       *media.Stager
	poller       *transcription.Poller
	metrics      *observability.Metrics
	fetchTimeout time.Duration
	log          *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPoller replaces the poller built from cfg.Poll.
func WithPoller(p *transcription.Poller) Option {
	return func(s *Service) { s.poller = p }
}

// WithMetrics records request and poll metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithFetchTimeout bounds locating and staging one source.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// NewService creates a Service. locator and stager are only used by
// providers that need media bytes.
func NewService(cfg transcription.Config, registry *transcription.Registry, locator media.Locator, stager *media.Stager, opts ...Option) *Service {
	cfg.ApplyDefaults()
	s := &Service{
		cfg:          cfg,
		registry:     registry,
		locator:      locator,
		stager:       stager,
		poller:       transcription.NewPoller(cfg.Poll),
		fetchTimeout: defaultFetchTimeout,
		log:          logger.Get("transcriber"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.poller.OnPoll == nil && s.metrics != nil {
		s.poller.OnPoll = s.metrics.RecordPoll
	}
	return s
}

// ProviderName returns the active provider name.
func (s *Service) ProviderName() string { return s.cfg.Provider }

// Transcribe runs one request to completion. It is not stopped by
// cancellation of ctx; each network call carries its own timeout.
func (s *Service) Transcribe(ctx context.Context, req transcription.Request) Outcome {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	name := s.cfg.Provider

	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProvider, name)
	if id := logger.RequestIDFromContext(ctx); id != "" {
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
	}

	var outcome Outcome
	text, err := s.run(ctx, name, req.SourceURL)
	if err != nil {
		outcome = Failure(err)
		observability.SetSpanError(ctx, outcome.Err)
	} else {
		outcome = Success(text)
	}
	elapsed := time.Since(start)
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, outcome.Label())
	s.metrics.RecordTranscription(ctx, name, outcome.Label(), elapsed)
	s.logOutcome(ctx, name, req.SourceURL, outcome, elapsed)
	return outcome
}

func (s *Service) run(ctx context.Context, name, sourceURL string) (string, error) {
	p, err := s.registry.Create(name, s.cfg.ProviderConfigFor(name))
	if err != nil {
		if errors.Is(err, provider.ErrNotRegistered) {
			return "", apperrors.UnknownProvider(name)
		}
		return "", err
	}
	observability.SetSpanAttribute(ctx, observability.AttrMode, string(transcription.ModeOf(p)))

	switch tp := p.(type) {
	case transcription.DirectProvider:
		return s.direct(ctx, tp, sourceURL)
	case transcription.JobProvider:
		return s.job(ctx, tp, sourceURL)
	case transcription.SpeechProvider:
		return s.speech(ctx, tp, sourceURL)
	default:
		return "", apperrors.Internal(fmt.Errorf("provider %q offers no transcription capability", name))
	}
}

func (s *Service) direct(ctx context.Context, dp transcription.DirectProvider, sourceURL string) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProviderSubmit)
	defer span.End()

	text, err := dp.FetchTranscript(ctx, sourceURL)
	if err != nil {
		return "", ensureCode(err, func(err error) *apperrors.AppError {
			return apperrors.ProviderHTTP(dp.Name(), 0, "", nil).WithCause(err)
		})
	}
	return nonEmpty(text)
}

func (s *Service) job(ctx context.Context, jp transcription.JobProvider, sourceURL string) (string, error) {
	audioURL := sourceURL
	if !jp.ForwardsURL() {
		handle, err := s.stage(ctx, sourceURL)
		if err != nil {
			return "", err
		}
		defer s.release(ctx, handle)

		audioURL, err = s.upload(ctx, jp, handle)
		if err != nil {
			return "", err
		}
		s.release(ctx, handle)
	}

	job, err := s.createJob(ctx, jp, audioURL)
	if err != nil {
		return "", err
	}
	job, err = s.poller.Wait(ctx, jp, job)
	if err != nil {
		return "", err
	}
	return nonEmpty(job.ResultText)
}

func (s *Service) upload(ctx context.Context, jp transcription.JobProvider, handle *media.Handle) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProviderSubmit)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrMediaBytes, handle.Size())

	ref, err := jp.Upload(ctx, handle.Media())
	if err != nil {
		return "", ensureCode(err, func(err error) *apperrors.AppError {
			return apperrors.UploadFailed(jp.Name(), err)
		})
	}
	return ref, nil
}

func (s *Service) createJob(ctx context.Context, jp transcription.JobProvider, audioURL string) (*transcription.Job, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProviderSubmit)
	defer span.End()

	job, err := jp.CreateJob(ctx, audioURL)
	if err != nil {
		return nil, ensureCode(err, func(err error) *apperrors.AppError {
			return apperrors.JobCreationFailed(jp.Name(), err)
		})
	}
	observability.SetSpanAttribute(ctx, observability.AttrJobID, job.ID)
	s.log.WithContext(ctx).Debug("job created", logger.Fields(
		logger.FieldProvider, jp.Name(),
		logger.FieldJobID, job.ID,
	))
	return job, nil
}

func (s *Service) speech(ctx context.Context, sp transcription.SpeechProvider, sourceURL string) (string, error) {
	handle, err := s.stage(ctx, sourceURL)
	if err != nil {
		return "", err
	}
	defer s.release(ctx, handle)

	ctx, span := observability.StartSpan(ctx, observability.SpanProviderSubmit)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrMediaBytes, handle.Size())

	text, err := sp.TranscribeMedia(ctx, handle.Media())
	if err != nil {
		return "", ensureCode(err, func(err error) *apperrors.AppError {
			return apperrors.ProviderHTTP(sp.Name(), 0, "", nil).WithCause(err)
		})
	}
	return nonEmpty(text)
}

// stage locates the source and writes it to the staging area.
func (s *Service) stage(ctx context.Context, sourceURL string) (*media.Handle, error) {
	if s.locator == nil || s.stager == nil {
		return nil, apperrors.Internal(errors.New("media staging is not configured"))
	}
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	locateCtx, locateSpan := observability.StartSpan(fetchCtx, observability.SpanMediaLocate)
	stream, err := s.locator.Locate(locateCtx, sourceURL)
	locateSpan.End()
	if err != nil {
		return nil, withSource(err, sourceURL)
	}
	defer func() { _ = stream.Close() }()

	stageCtx, stageSpan := observability.StartSpan(fetchCtx, observability.SpanMediaStage)
	defer stageSpan.End()
	handle, err := s.stager.Stage(stageCtx, stream)
	if err != nil {
		return nil, withSource(err, sourceURL)
	}
	observability.SetSpanAttribute(stageCtx, observability.AttrMediaBytes, handle.Size())
	return handle, nil
}

func (s *Service) release(ctx context.Context, h *media.Handle) {
	if err := h.Release(); err != nil {
		s.log.WithContext(ctx).Warn("staged media not removed", logger.MergeWithError(
			logger.Fields("path", h.Path()), err))
	}
}

func (s *Service) logOutcome(ctx context.Context, name, sourceURL string, o Outcome, elapsed time.Duration) {
	log := s.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldProvider, name,
		logger.FieldSourceURL, sourceURL,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	if o.OK() {
		log.Info("transcription completed", logger.Fields("chars", len(o.Text)))
		return
	}

	fields := logger.Fields(logger.FieldCode, string(o.Err.Code), "kind", string(o.Err.Kind))
	for k, v := range o.Err.Details {
		fields[k] = v
	}
	if o.Err.Cause != nil {
		fields[logger.FieldError] = o.Err.Cause.Error()
	}
	if o.Err.Kind == apperrors.KindValidation {
		log.Warn(o.Err.Message, fields)
		return
	}
	log.Error(o.Err.Message, fields)
}

// ensureCode returns err unchanged when it is already an AppError and wraps
// it otherwise.
func ensureCode(err error, wrap func(error) *apperrors.AppError) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return wrap(err)
}

// withSource fills in the source URL on media errors raised below the
// locator, where it is not known.
func withSource(err error, sourceURL string) error {
	ae, ok := apperrors.AsAppError(err)
	if !ok {
		return apperrors.UnreachableSource(sourceURL, 0).WithCause(err)
	}
	if v, _ := ae.Details["source_url"].(string); v == "" {
		ae.WithDetail("source_url", sourceURL)
	}
	return ae
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.TranscriptUnavailable("")
	}
	return text, nil
}
