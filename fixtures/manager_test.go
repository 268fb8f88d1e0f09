package fixtures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composetest/composetest/compose"
)

const testComposeFile = `
services:
  web:
    image: nginx:alpine
    ports:
      - "80"
  db:
    image: postgres:16-alpine
`

// fakeEngine is an Engine whose containers exist only in memory. It records the
// order of its side-effecting calls (and of log reads) in events so that tests
// can assert on sequencing.
type fakeEngine struct {
	events []string

	running []*compose.Container // what Containers reports while "up"
	cycle   int

	buildErr error
	listErr  error
	upErr    error
	downErr  error
}

func (e *fakeEngine) Build(ctx context.Context, p *compose.Project) error {
	e.events = append(e.events, "build")
	return e.buildErr
}

func (e *fakeEngine) Containers(ctx context.Context, p *compose.Project) ([]*compose.Container, error) {
	if e.listErr != nil {
		return nil, e.listErr
	}
	return append([]*compose.Container(nil), e.running...), nil
}

func (e *fakeEngine) Up(ctx context.Context, p *compose.Project) ([]*compose.Container, error) {
	e.events = append(e.events, "up")
	if e.upErr != nil {
		return nil, e.upErr
	}
	e.cycle++
	e.running = e.makeContainers(p)
	return append([]*compose.Container(nil), e.running...), nil
}

func (e *fakeEngine) Down(ctx context.Context, p *compose.Project, containers []*compose.Container) error {
	e.events = append(e.events, "down")
	if e.downErr != nil {
		return e.downErr
	}
	e.running = nil
	return nil
}

func (e *fakeEngine) makeContainers(p *compose.Project) []*compose.Container {
	var containers []*compose.Container
	for i, service := range p.Services() {
		name := fmt.Sprintf("%s-%s-1", p.Name(), service)
		c := &compose.Container{
			ID:      fmt.Sprintf("cycle%d-%s", e.cycle, service),
			Name:    name,
			Service: service,
			State:   "running",
			Ports: nat.PortMap{
				"80/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", 32768+i)}},
			},
		}
		c.Logs = func(ctx context.Context) ([]byte, error) {
			e.events = append(e.events, "logs:"+c.Name)
			return []byte("output from " + c.Service), nil
		}
		containers = append(containers, c)
	}
	return containers
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compose.yaml"), []byte(testComposeFile), 0600))
	return Config{
		ComposeFile: dir,
		ProjectName: "app",
		Output:      &bytes.Buffer{},
	}
}

func newTestManager(t *testing.T, engine compose.Engine) *Manager {
	t.Helper()
	m, err := NewManagerWithEngine(context.Background(), testConfig(t), engine)
	require.NoError(t, err)
	return m
}

func TestNewManagerBuildsOnce(t *testing.T) {
	engine := &fakeEngine{}
	newTestManager(t, engine)
	assert.Equal(t, []string{"build"}, engine.events)
}

func TestNewManagerSkipsBuildWhenDisabled(t *testing.T) {
	engine := &fakeEngine{}
	cfg := testConfig(t)
	cfg.NoBuild = true
	_, err := NewManagerWithEngine(context.Background(), cfg, engine)
	require.NoError(t, err)
	assert.Empty(t, engine.events)
}

func TestNewManagerConfigNotFound(t *testing.T) {
	engine := &fakeEngine{}
	cfg := Config{ComposeFile: filepath.Join(t.TempDir(), "missing")}
	_, err := NewManagerWithEngine(context.Background(), cfg, engine)
	assert.ErrorIs(t, err, compose.ErrConfigNotFound)
	assert.Empty(t, engine.events, "no engine calls should happen when the definition is missing")
}

func TestNewManagerPropagatesBuildError(t *testing.T) {
	buildErr := errors.New("build exploded")
	engine := &fakeEngine{buildErr: buildErr}
	_, err := NewManagerWithEngine(context.Background(), testConfig(t), engine)
	assert.ErrorIs(t, err, buildErr)
}

func TestAcquireStartsOneContainerPerDeclaredService(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestManager(t, engine)

	group, err := m.Acquire(context.Background())
	require.NoError(t, err)

	containers := group.Containers()
	require.Len(t, containers, len(m.Project().Services()))

	seen := map[string]bool{}
	for _, c := range containers {
		assert.False(t, seen[c.Name], "container names must be unique")
		seen[c.Name] = true
		assert.Contains(t, m.Project().Services(), c.Service)
		assert.NotEmpty(t, c.NetworkInfo, "endpoints must be attached on acquire")
	}

	endpoints := group.Endpoints()
	require.Len(t, endpoints, len(containers))
	for _, c := range containers {
		assert.Equal(t, c.NetworkInfo, endpoints[c.Name])
	}
}

func TestAcquireConflictWithLeftoverContainers(t *testing.T) {
	engine := &fakeEngine{
		running: []*compose.Container{{Name: "app-web-1", State: "running"}},
	}
	m := newTestManager(t, engine)

	_, err := m.Acquire(context.Background())

	var conflict *compose.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Error(), "app-web-1")
	assert.NotContains(t, engine.events, "up", "no additional containers may be started on conflict")
}

func TestAcquireFailsWhenNothingStarts(t *testing.T) {
	// Up succeeds but produces nothing, as with a broken definition.
	engine := &emptyUpEngine{fakeEngine: &fakeEngine{}}
	m := newTestManager(t, engine)

	_, err := m.Acquire(context.Background())
	assert.ErrorIs(t, err, compose.ErrNoContainers)
}

// emptyUpEngine reports a successful Up that produced no containers.
type emptyUpEngine struct {
	*fakeEngine
}

func (e *emptyUpEngine) Up(ctx context.Context, p *compose.Project) ([]*compose.Container, error) {
	e.events = append(e.events, "up")
	return nil, nil
}

func TestAcquirePropagatesEngineErrors(t *testing.T) {
	t.Run("list failure", func(t *testing.T) {
		listErr := errors.New("daemon unreachable")
		engine := &fakeEngine{}
		m := newTestManager(t, engine)
		engine.listErr = listErr
		_, err := m.Acquire(context.Background())
		assert.ErrorIs(t, err, listErr)
	})

	t.Run("up failure", func(t *testing.T) {
		upErr := errors.New("port already allocated")
		engine := &fakeEngine{}
		m := newTestManager(t, engine)
		engine.upErr = upErr
		_, err := m.Acquire(context.Background())
		assert.ErrorIs(t, err, upErr)
	})
}

func TestReleaseReportsLogsInNameOrderBeforeDown(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestManager(t, engine)

	group, err := m.Acquire(context.Background())
	require.NoError(t, err)

	engine.events = nil
	require.NoError(t, m.Release(context.Background(), group))

	assert.Equal(t, []string{"logs:app-db-1", "logs:app-web-1", "down"}, engine.events)
}

func TestReleasePropagatesDownError(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestManager(t, engine)

	group, err := m.Acquire(context.Background())
	require.NoError(t, err)

	downErr := errors.New("teardown failed")
	engine.downErr = downErr
	assert.ErrorIs(t, m.Release(context.Background(), group), downErr)
}

func TestAcquireReleaseRoundTripYieldsFreshInstances(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestManager(t, engine)
	ctx := context.Background()

	first, err := m.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Release(ctx, first))

	second, err := m.Acquire(ctx)
	require.NoError(t, err)

	firstIDs := map[string]bool{}
	for _, c := range first.Containers() {
		firstIDs[c.ID] = true
	}
	for _, c := range second.Containers() {
		assert.False(t, firstIDs[c.ID], "instance %s reused across cycles", c.ID)
	}
}

func TestSecondAcquireWithoutReleaseIsRejected(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestManager(t, engine)
	ctx := context.Background()

	_, err := m.Acquire(ctx)
	require.NoError(t, err)

	_, err = m.Acquire(ctx)
	var conflict *compose.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
