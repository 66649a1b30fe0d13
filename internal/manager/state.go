package manager

// Status is the lifecycle state of a tracked task.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusStopped   Status = "stopped"
)

// Mode selects how an invocation is supervised.
type Mode string

const (
	// ModeTracked tasks live in the task table and can be listed and stopped.
	ModeTracked Mode = "tracked"
	// ModeOneTime tasks run detached; the manager keeps no record of them.
	ModeOneTime Mode = "oneTime"
)

// statusTransitions defines the forward-only lifecycle. Terminal states
// have no successors.
var statusTransitions = map[Status][]Status{
	StatusRunning:   {StatusCompleted, StatusStopped},
	StatusCompleted: {},
	StatusStopped:   {},
}

func canTransition(src, dst Status) bool {
	for _, s := range statusTransitions[src] {
		if s == dst {
			return true
		}
	}
	return false
}
