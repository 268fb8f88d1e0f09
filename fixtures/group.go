package fixtures

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/composetest/composetest/compose"
)

// Group is the set of containers produced by one Acquire. It is a snapshot: the
// containers in it are never carried over into a later cycle.
type Group struct {
	containers []*compose.Container
	byName     map[string]*compose.Container
}

func newGroup(containers []*compose.Container) *Group {
	sorted := append([]*compose.Container(nil), containers...)
	slices.SortFunc(sorted, func(a, b *compose.Container) int {
		return strings.Compare(a.Name, b.Name)
	})
	byName := make(map[string]*compose.Container, len(sorted))
	for _, c := range sorted {
		byName[c.Name] = c
	}
	return &Group{containers: sorted, byName: byName}
}

// Containers returns the group's containers sorted by name.
func (g *Group) Containers() []*compose.Container {
	return append([]*compose.Container(nil), g.containers...)
}

// Container looks up a container by its name.
func (g *Group) Container(name string) (*compose.Container, bool) {
	c, ok := g.byName[name]
	return c, ok
}

// Endpoints returns each container's resolved endpoint list, keyed by container
// name.
func (g *Group) Endpoints() map[string][]compose.Endpoint {
	result := make(map[string][]compose.Endpoint, len(g.containers))
	for _, c := range g.containers {
		result[c.Name] = c.NetworkInfo
	}
	return result
}
