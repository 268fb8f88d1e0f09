package compose

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigNotFound is returned (wrapped) by LoadProject when the given path is
// neither a compose file nor a directory containing one.
var ErrConfigNotFound = errors.New("compose file not found")

// ErrNoContainers is returned by the lifecycle manager when docker compose
// reported success but no containers are running, which normally indicates a
// problem with the project definition.
var ErrNoContainers = errors.New("docker compose did not start any containers")

// ConflictError is returned when containers belonging to the project are already
// running at the time a fixture tries to start it. The harness never tears down
// containers it did not start, so this always surfaces to the caller.
type ConflictError struct {
	Containers []*Container
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Containers))
	for _, c := range e.Containers {
		names = append(names, c.Name)
	}
	return fmt.Sprintf(
		"tried to start containers but these are already running: %s (you probably scoped your fixtures wrong)",
		strings.Join(names, ", "))
}
