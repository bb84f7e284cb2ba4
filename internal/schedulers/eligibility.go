package schedulers

const (
	// CommandServe is the only command that may own the scheduler.
	CommandServe = "serve"
	// EnvReloadedChild is set to "true" by the dev reloader in the process that serves.
	EnvReloadedChild = "RUN_MAIN"
)

// Eligibility describes the process asking to start the scheduler.
type Eligibility struct {
	Enabled       bool
	Command       string
	DevReload     bool
	ReloadedChild bool
}

// DetectEligibility builds the Eligibility of the current process. getenv is usually os.Getenv.
func DetectEligibility(enabled bool, command string, devReload bool, getenv func(string) string) Eligibility {
	return Eligibility{
		Enabled:       enabled,
		Command:       command,
		DevReload:     devReload,
		ReloadedChild: getenv(EnvReloadedChild) == "true",
	}
}

// Allowed reports whether the process may try to take the scheduler lock.
// Under a dev reloader only the reloaded child qualifies, never the watcher parent.
func (e Eligibility) Allowed() bool {
	if !e.Enabled || e.Command != CommandServe {
		return false
	}
	return !e.DevReload || e.ReloadedChild
}

// Reason names why the process is not allowed, for logging.
func (e Eligibility) Reason() string {
	switch {
	case !e.Enabled:
		return "disabled"
	case e.Command != CommandServe:
		return "not_serving"
	case e.DevReload && !e.ReloadedChild:
		return "reloader_parent"
	default:
		return ""
	}
}
