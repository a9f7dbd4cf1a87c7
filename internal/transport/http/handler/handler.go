package handler

// ReadyCheck probes one dependency for the readiness endpoint.
type ReadyCheck struct {
	Name  string
	Probe func() error
}

// Handler contains the base HTTP handlers and their dependencies.
type Handler struct {
	version string
	checks  []ReadyCheck
}

// New creates a new handler.
func New(version string, checks ...ReadyCheck) *Handler {
	return &Handler{version: version, checks: checks}
}
