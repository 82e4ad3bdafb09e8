package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external program traceplot may start.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional requirements are reported but never fail a check.
	Optional bool
}

// Status is the outcome of resolving one Requirement.
type Status struct {
	Requirement
	Available bool
	// Path is the resolved executable when Available.
	Path string
	// Detail explains why the requirement is unavailable.
	Detail string
}

// KstRequirement describes the kst2 plotter. It is optional with the native
// renderer because traceplot can then produce the PDF itself.
func KstRequirement(binary string, native bool) Requirement {
	return Requirement{
		Name:        "kst2",
		Command:     binary,
		Description: "Interactive plotting of trace tables",
		Optional:    native,
	}
}

// CheckBinaries resolves every requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	out := make([]Status, len(requirements))
	for i, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		out[i] = resolve(req)
	}
	return out
}

func resolve(req Requirement) Status {
	s := Status{Requirement: req}
	if req.Command == "" {
		s.Detail = "command not configured"
		return s
	}
	path, err := exec.LookPath(req.Command)
	switch {
	case err == nil:
		s.Available = true
		s.Path = path
	case errors.Is(err, exec.ErrNotFound):
		s.Detail = fmt.Sprintf("binary %q not found", req.Command)
	default:
		s.Detail = fmt.Sprintf("binary %q unusable: %v", req.Command, err)
	}
	return s
}

// MissingRequired returns the statuses of unavailable, non-optional requirements.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
