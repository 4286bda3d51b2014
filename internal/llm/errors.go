package llm

// ServiceError marks a failure inside a provider or the upstream model API:
// transport errors, auth failures, or an unusable response. Handlers map it
// to a user-visible generation failure.
type ServiceError struct {
	Provider string
	Message  string // human-readable, includes the upstream error text
	Err      error  // wrapped cause, nil for malformed-response failures
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
