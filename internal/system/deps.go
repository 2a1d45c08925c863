package system

import (
	"fmt"
	"os/exec"
)

// Requirement defines an external binary the slideshow pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Requirements lists everything the composer may invoke.
func Requirements() []Requirement {
	return []Requirement{
		{Name: "ffmpeg", Command: "ffmpeg", Description: "renders motion segments and merges them"},
		{Name: "ffprobe", Command: "ffprobe", Description: "verifies output duration", Optional: true},
	}
}

// CheckBinaries resolves each requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	statuses := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		if _, err := exec.LookPath(req.Command); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found on PATH", req.Command)
		} else {
			status.Available = true
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// MissingRequired returns the names of required binaries that are absent.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}
