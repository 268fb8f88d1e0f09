package fixtures

import (
	"context"
	"fmt"

	"github.com/composetest/composetest/compose"
	"github.com/composetest/composetest/framework"
)

// Manager owns one compose project for the duration of a test run and runs
// Acquire/Release cycles against it. It holds no state about running containers
// between cycles; the conflict check in Acquire always consults the engine's
// live state, so stale containers from a mis-scoped earlier cycle are detected
// rather than silently adopted.
//
// A Manager is not safe for concurrent use. Test suites running fixtures in
// parallel against the same project must serialize Acquire/Release externally.
type Manager struct {
	project  *compose.Project
	engine   compose.Engine
	reporter *Reporter
	logger   framework.Logger
}

// NewManager resolves the compose project named by cfg and, unless cfg.NoBuild
// is set, builds its images. This is the once-per-run initialization step; the
// same Manager is then shared by every fixture scope.
//
// A path that cannot be resolved returns an error wrapping
// compose.ErrConfigNotFound. Build failures are returned as-is.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	engine, err := compose.NewDockerEngine(compose.WithEngineLogger(cfg.logger()))
	if err != nil {
		return nil, err
	}
	return NewManagerWithEngine(ctx, cfg, engine)
}

// NewManagerWithEngine is NewManager with a caller-supplied engine. It is used
// by tests of the harness itself and by callers with a nonstandard compose
// installation.
func NewManagerWithEngine(ctx context.Context, cfg Config, engine compose.Engine) (*Manager, error) {
	var projectOpts []compose.ProjectOption
	if cfg.ProjectName != "" {
		projectOpts = append(projectOpts, compose.WithProjectName(cfg.ProjectName))
	}
	project, err := compose.LoadProject(cfg.composePath(), projectOpts...)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		project:  project,
		engine:   engine,
		reporter: &Reporter{Out: cfg.output()},
		logger:   framework.LoggerWithPrefix(cfg.logger(), "[fixtures] "),
	}

	if !cfg.NoBuild {
		m.logger.Printf("building images for project %q", project.Name())
		if err := engine.Build(ctx, project); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Project returns the resolved project handle.
func (m *Manager) Project() *compose.Project { return m.project }

// Acquire starts one fixture cycle: it verifies that no containers belonging to
// the project are already running, brings the whole group up, and returns the
// running containers with their endpoint lists attached.
//
// Error cases, all fatal to the current scope:
//   - *compose.ConflictError if the project already has running containers;
//     nothing further is started, and the existing containers are left alone.
//   - compose.ErrNoContainers if the engine started nothing.
//   - Any engine error, unchanged apart from context.
func (m *Manager) Acquire(ctx context.Context) (*Group, error) {
	running, err := m.engine.Containers(ctx, m.project)
	if err != nil {
		return nil, fmt.Errorf("checking for running containers: %w", err)
	}
	if len(running) > 0 {
		return nil, &compose.ConflictError{Containers: running}
	}

	m.logger.Printf("starting project %q", m.project.Name())
	containers, err := m.engine.Up(ctx, m.project)
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, compose.ErrNoContainers
	}

	for _, c := range containers {
		c.NetworkInfo = compose.NetworkInfoForContainer(c)
	}
	return newGroup(containers), nil
}

// Release ends a fixture cycle: it reports every container's captured logs, in
// name order, and then tears the group down. Teardown removes the containers and
// their ephemeral storage but never the built images, so a following Acquire
// starts fresh containers without rebuilding.
//
// Reporting problems (unreadable or undecodable logs) never prevent teardown.
func (m *Manager) Release(ctx context.Context, group *Group) error {
	containers := group.Containers()
	m.reporter.Report(ctx, containers)
	m.logger.Printf("stopping project %q", m.project.Name())
	return m.engine.Down(ctx, m.project, containers)
}
