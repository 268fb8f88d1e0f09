package compose

import (
	"strconv"

	"github.com/docker/go-connections/nat"
)

// Endpoint describes one externally reachable network surface of a running
// container: the container-side port (with protocol), a hostname tests can
// connect to, and the host-side port number.
type Endpoint struct {
	ContainerPort nat.Port
	Hostname      string
	HostPort      int
}

// NetworkInfoForContainer derives the endpoint list for a container from its
// port-binding metadata. One Endpoint is produced per host binding per container
// port; a single container port may have several. The hostname is "localhost"
// whenever the engine reports an empty bind address.
//
// The result is recomputed from the container's Ports on every call and carries
// no ordering guarantee beyond the engine's own port-map iteration; callers
// should match endpoints by ContainerPort, not position.
func NetworkInfoForContainer(c *Container) []Endpoint {
	var endpoints []Endpoint
	for port, bindings := range c.Ports {
		for _, binding := range bindings {
			if binding.HostPort == "" {
				// Exposed but not published to the host.
				continue
			}
			hostPort, err := strconv.Atoi(binding.HostPort)
			if err != nil {
				continue
			}
			hostname := binding.HostIP
			if hostname == "" {
				hostname = "localhost"
			}
			endpoints = append(endpoints, Endpoint{
				ContainerPort: port,
				Hostname:      hostname,
				HostPort:      hostPort,
			})
		}
	}
	return endpoints
}
