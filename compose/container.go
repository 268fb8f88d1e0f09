package compose

import (
	"context"

	"github.com/docker/go-connections/nat"
)

// LogsFunc reads the full captured output of a container.
type LogsFunc func(ctx context.Context) ([]byte, error)

// Container is one running container belonging to a compose project. Instances
// are produced by Engine.Up and Engine.Containers and are never reused across an
// up/down cycle: after the group is torn down, a fresh Up yields new instances.
type Container struct {
	// ID is the engine's identifier for the container.
	ID string

	// Name is the container name, unique within the project.
	Name string

	// Service is the name of the compose service this container was created from.
	Service string

	// State is the engine-reported state ("running" and so on) at the time the
	// Container value was built.
	State string

	// Ports is the engine's port-binding metadata: container port to the list of
	// host bindings registered for it.
	Ports nat.PortMap

	// NetworkInfo is the container's resolved endpoint list. It is populated by
	// the fixture manager when the group comes up; NetworkInfoForContainer
	// recomputes it from Ports at any time.
	NetworkInfo []Endpoint

	// Logs reads the container's captured output. It may be nil for containers
	// built outside a real engine (for example in tests).
	Logs LogsFunc
}
