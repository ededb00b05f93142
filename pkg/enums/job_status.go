package enums

import "fmt"

// JobStatus tracks a supplier job from creation to handoff. Cancelled is
// terminal and reachable only from pending; once a supplier accepts, the job
// can no longer be cancelled.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusReady     JobStatus = "ready"
	JobStatusPickedUp  JobStatus = "picked_up"
	JobStatusDelivered JobStatus = "delivered"
	JobStatusCancelled JobStatus = "cancelled"
)

var validJobStatuses = []JobStatus{
	JobStatusPending,
	JobStatusAccepted,
	JobStatusReady,
	JobStatusPickedUp,
	JobStatusDelivered,
	JobStatusCancelled,
}

// String implements fmt.Stringer.
func (j JobStatus) String() string {
	return string(j)
}

// IsValid reports whether the value is a known JobStatus.
func (j JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == j {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (j JobStatus) IsTerminal() bool {
	return j == JobStatusDelivered || j == JobStatusCancelled
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
