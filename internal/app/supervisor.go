package app

import (
	"time"

	"access-summary/internal/shared/loggers"

	"github.com/thejerf/suture/v4"
)

const (
	supervisorName = "access-summary"

	failureThreshold = 5.0
	failureDecay     = 30.0
	failureBackoff   = 15 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func newSupervisor(logger loggers.Logger) *suture.Supervisor {
	return suture.New(supervisorName, suture.Spec{
		EventHook:        supervisorEventHook(logger),
		FailureThreshold: failureThreshold,
		FailureDecay:     failureDecay,
		FailureBackoff:   failureBackoff,
		Timeout:          shutdownTimeout,
	})
}

// supervisorEventHook logs suture events through zerolog. Panics and backoff are
// errors, the rest warnings.
func supervisorEventHook(logger loggers.Logger) suture.EventHook {
	return func(event suture.Event) {
		entry := logger.Warn()
		switch event.Type() {
		case suture.EventTypeServicePanic, suture.EventTypeBackoff:
			entry = logger.Error()
		case suture.EventTypeResume:
			entry = logger.Info()
		}
		entry.
			Str("supervisor_event", eventTypeName(event.Type())).
			Fields(event.Map()).
			Msg(event.String())
	}
}

func eventTypeName(eventType suture.EventType) string {
	switch eventType {
	case suture.EventTypeStopTimeout:
		return "stop_timeout"
	case suture.EventTypeServicePanic:
		return "service_panic"
	case suture.EventTypeServiceTerminate:
		return "service_terminate"
	case suture.EventTypeBackoff:
		return "backoff"
	case suture.EventTypeResume:
		return "resume"
	default:
		return "unknown"
	}
}
