package schedulers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"access-summary/internal/aggregators"
	"access-summary/internal/shared/loggers"
	"access-summary/internal/shared/metrics"
	"access-summary/internal/shared/svcerrors"
	"access-summary/internal/shared/ulid"
	"access-summary/internal/summaries"

	"github.com/thejerf/suture/v4"
)

const (
	DefaultPollInterval  = 30 * time.Second
	DefaultTriggerOffset = 5 * time.Minute

	serviceName = "access-summary-scheduler"
)

// Outcome is the result of one loop iteration.
type Outcome string

const (
	OutcomeNotDue           Outcome = "not_due"
	OutcomeAlreadyGenerated Outcome = "already_generated"
	OutcomeFound            Outcome = "found"
	OutcomeGenerated        Outcome = "generated"
	OutcomeFailed           Outcome = "failed"
)

type Options struct {
	PollInterval time.Duration
	// TriggerOffset is how long after local midnight the previous day becomes due.
	TriggerOffset time.Duration
	Location      *time.Location
}

// Scheduler produces yesterday's summary once per day in at most one process per host.
// It is a suture.Service; add it to a supervisor only after Acquire returned true.
type Scheduler interface {
	// Acquire decides, once per process, whether this process owns the scheduler.
	// Later calls return the first decision.
	Acquire(eligibility Eligibility) (bool, error)
	Serve(ctx context.Context) error
	// RunOnce performs a single iteration as of now.
	RunOnce(ctx context.Context, now time.Time) Outcome
	// Release gives up the lock of a running scheduler.
	Release() error
	Phase() Phase
	LastGenerated() string
	String() string
}

type scheduler struct {
	options        Options
	lock           FileLock
	summaryService summaries.SummaryService
	state          *state
	now            func() time.Time

	logger loggers.Logger
}

func NewScheduler(options Options, lock FileLock, summaryService summaries.SummaryService, logger loggers.Logger) Scheduler {
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	if options.TriggerOffset < 0 {
		options.TriggerOffset = DefaultTriggerOffset
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	return &scheduler{
		options:        options,
		lock:           lock,
		summaryService: summaryService,
		state:          newState(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *scheduler) Acquire(eligibility Eligibility) (bool, error) {
	if phase := s.state.Phase(); phase != PhaseNotStarted {
		return phase == PhaseRunning, nil
	}

	logger := s.logger.With().Str(loggers.FieldLockFile, s.lock.Path()).Logger()

	if !eligibility.Allowed() {
		if s.state.transition(PhaseDeclined) {
			logger.Info().Str("reason", eligibility.Reason()).Msg("scheduler not started")
		}
		return s.state.Phase() == PhaseRunning, nil
	}

	if err := s.lock.TryAcquire(); err != nil {
		s.state.transition(PhaseDeclined)
		if errors.Is(err, ErrLockHeld) || errors.Is(err, ErrLockUnsupported) {
			logger.Info().Err(err).Msg("scheduler owned by another process")
			return s.state.Phase() == PhaseRunning, nil
		}
		svcErr := errInternalLockFailed(s.lock.Path(), err)
		logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msg("scheduler lock failed")
		return s.state.Phase() == PhaseRunning, svcErr
	}

	if !s.state.transition(PhaseRunning) {
		// lost a race with a concurrent Acquire that declined
		_ = s.lock.Release()
		return s.state.Phase() == PhaseRunning, nil
	}
	metricOwner.Set(1)
	logger.Info().
		Dur("poll_interval", s.options.PollInterval).
		Dur("trigger_offset", s.options.TriggerOffset).
		Msg("scheduler lock acquired")
	return true, nil
}

// Serve runs an iteration immediately and then once per poll interval until ctx is done.
// It refuses to run, without restart, when the lock was not acquired.
func (s *scheduler) Serve(ctx context.Context) error {
	if s.state.Phase() != PhaseRunning {
		s.logger.Error().Str(loggers.FieldLockFile, s.lock.Path()).Msg("scheduler served without holding the lock")
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.options.PollInterval)
	defer ticker.Stop()

	for {
		s.RunOnce(ctx, s.now())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *scheduler) RunOnce(ctx context.Context, now time.Time) (outcome Outcome) {
	ctx = s.logger.With().
		Str(loggers.FieldRunID, ulid.NewULIDAt(now)).
		Logger().WithContext(ctx)

	errorCode := metrics.ValueNoError
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("scheduler panic recovered")

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			outcome = OutcomeFailed
			errorCode = svcerrors.NewInternalErrorPanic(panicErr).Code
		}
		metricIterationsTotal.WithLabelValues(string(outcome), errorCode).Inc()
	}()

	outcome, err := s.runOnce(ctx, now)
	if err != nil {
		errorCode = err.Code
		loggers.Ctx(ctx).Error().
			Err(err.Cause).
			Str(loggers.FieldErrorCode, err.Code).
			Msg("scheduler iteration failed")
	}
	return outcome
}

func (s *scheduler) runOnce(ctx context.Context, now time.Time) (Outcome, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	target, due := s.dueDate(now)
	if !due {
		return OutcomeNotDue, nil
	}
	if s.state.LastGenerated() == target {
		return OutcomeAlreadyGenerated, nil
	}

	exists, err := s.summaryService.Exists(ctx, target, "")
	if err != nil {
		return OutcomeFailed, errInternalIterationFailed(target, err)
	}
	if exists {
		s.markGenerated(target)
		logger.Debug().Str(loggers.FieldSummaryDate, target).Msg("summary already published")
		return OutcomeFound, nil
	}

	result, err := s.summaryService.Generate(ctx, summaries.GenerateRequest{Date: target})
	if err != nil {
		return OutcomeFailed, errInternalIterationFailed(target, err)
	}
	s.markGenerated(target)

	logger.Info().
		Str(loggers.FieldSummaryDate, target).
		Str("json_path", result.JSONPath).
		Str("markdown_path", result.MarkdownPath).
		Msg("scheduled summary generated")
	return OutcomeGenerated, nil
}

// dueDate returns yesterday's date in the scheduler location and whether the daily
// trigger time has passed.
func (s *scheduler) dueDate(now time.Time) (string, bool) {
	local := now.In(s.options.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.options.Location)
	if local.Before(midnight.Add(s.options.TriggerOffset)) {
		return "", false
	}
	return midnight.AddDate(0, 0, -1).Format(aggregators.DateLayout), true
}

func (s *scheduler) markGenerated(date string) {
	s.state.markGenerated(date)
	metricLastGeneratedTimestamp.Set(float64(s.now().Unix()))
}

func (s *scheduler) Release() error {
	if s.state.Phase() != PhaseRunning {
		return nil
	}
	metricOwner.Set(0)
	return s.lock.Release()
}

func (s *scheduler) Phase() Phase {
	return s.state.Phase()
}

func (s *scheduler) LastGenerated() string {
	return s.state.LastGenerated()
}

func (s *scheduler) String() string {
	return serviceName
}
