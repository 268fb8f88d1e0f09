package fixtures

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"

	"github.com/composetest/composetest/compose"
)

func TestGroupSortsContainersByName(t *testing.T) {
	g := newGroup([]*compose.Container{
		{Name: "zebra"},
		{Name: "alpha"},
		{Name: "mid"},
	})

	var names []string
	for _, c := range g.Containers() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, names)
}

func TestGroupContainerLookup(t *testing.T) {
	web := &compose.Container{Name: "app-web-1"}
	g := newGroup([]*compose.Container{web})

	found, ok := g.Container("app-web-1")
	require.True(t, ok)
	assert.Same(t, web, found)

	_, ok = g.Container("nope")
	assert.False(t, ok)
}

func TestGroupEndpointsKeyedByContainerName(t *testing.T) {
	g := newGroup([]*compose.Container{
		{Name: "a", NetworkInfo: []compose.Endpoint{{ContainerPort: "80/tcp", Hostname: "localhost", HostPort: 1}}},
		{Name: "b"},
	})

	endpoints := g.Endpoints()
	keys := maps.Keys(endpoints)
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Len(t, endpoints["a"], 1)
	assert.Empty(t, endpoints["b"])
}

func TestGroupContainersReturnsCopy(t *testing.T) {
	g := newGroup([]*compose.Container{{Name: "a"}, {Name: "b"}})
	containers := g.Containers()
	containers[0] = &compose.Container{Name: "swapped"}

	fresh := g.Containers()
	assert.Equal(t, "a", fresh[0].Name)
}
