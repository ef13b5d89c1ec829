package sigtask

// ConfigError reports a missing required task attribute. It always aborts
// the task, regardless of the fail-on-error policy.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return e.Field + " not specified"
}

// EngineError aborts the build when the interpreted outcome is a failure
// and fail-on-error is set. It carries the engine's full report.
type EngineError struct {
	Report string
}

func (e *EngineError) Error() string {
	return "signature check failed: " + e.Report
}
