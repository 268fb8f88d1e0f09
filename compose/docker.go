package compose

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"

	"github.com/composetest/composetest/framework"
)

// Labels docker compose stamps onto every container it creates.
const (
	projectLabel = "com.docker.compose.project"
	serviceLabel = "com.docker.compose.service"
)

// DockerEngine is the real Engine. The compose verbs (build/up/down) shell out to
// the docker compose CLI, which owns all of the definition parsing and service
// ordering logic; queries (container listing, port bindings, logs) go through the
// Docker API so that the harness sees the engine's live state rather than parsed
// CLI output.
type DockerEngine struct {
	apiClient  client.APIClient
	composeCmd []string
	logger     framework.Logger
}

// DockerEngineOption is a configuration option for NewDockerEngine.
type DockerEngineOption func(*DockerEngine)

// WithEngineLogger directs the engine's diagnostic output (compose command lines
// and their results) to the given logger.
func WithEngineLogger(logger framework.Logger) DockerEngineOption {
	return func(e *DockerEngine) {
		e.logger = logger
	}
}

// WithComposeCommand overrides the command used for the compose verbs. The
// default is "docker compose"; older installations may need "docker-compose".
func WithComposeCommand(args ...string) DockerEngineOption {
	return func(e *DockerEngine) {
		e.composeCmd = args
	}
}

// NewDockerEngine connects to the Docker daemon using the usual environment
// configuration (DOCKER_HOST and friends).
func NewDockerEngine(opts ...DockerEngineOption) (*DockerEngine, error) {
	e := &DockerEngine{
		composeCmd: []string{"docker", "compose"},
		logger:     framework.NullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	apiClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connecting to Docker daemon: %w", err)
	}
	e.apiClient = apiClient
	return e, nil
}

// Close releases the connection to the Docker daemon.
func (e *DockerEngine) Close() error {
	return e.apiClient.Close()
}

func (e *DockerEngine) Build(ctx context.Context, p *Project) error {
	return e.runCompose(ctx, p, "build")
}

func (e *DockerEngine) Up(ctx context.Context, p *Project) ([]*Container, error) {
	if err := e.runCompose(ctx, p, "up", "--detach"); err != nil {
		return nil, err
	}
	return e.Containers(ctx, p)
}

// Down tears the project down without removing images or named volumes, so that
// the next cycle can reuse the build. The containers parameter is advisory;
// docker compose itself decides what belongs to the project.
func (e *DockerEngine) Down(ctx context.Context, p *Project, containers []*Container) error {
	return e.runCompose(ctx, p, "down")
}

func (e *DockerEngine) Containers(ctx context.Context, p *Project) ([]*Container, error) {
	listFilters := filters.NewArgs(
		filters.Arg("label", projectLabel+"="+p.Name()),
		filters.Arg("status", "running"),
	)
	summaries, err := e.apiClient.ContainerList(ctx, container.ListOptions{Filters: listFilters})
	if err != nil {
		return nil, fmt.Errorf("listing containers for project %q: %w", p.Name(), err)
	}

	result := make([]*Container, 0, len(summaries))
	for _, summary := range summaries {
		inspected, err := e.apiClient.ContainerInspect(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("inspecting container %s: %w", summary.ID, err)
		}
		var ports nat.PortMap
		if inspected.NetworkSettings != nil {
			ports = inspected.NetworkSettings.Ports
		}
		state := ""
		if inspected.State != nil {
			state = inspected.State.Status
		}
		result = append(result, &Container{
			ID:      summary.ID,
			Name:    strings.TrimPrefix(inspected.Name, "/"),
			Service: summary.Labels[serviceLabel],
			State:   state,
			Ports:   ports,
			Logs:    e.containerLogs(summary.ID),
		})
	}
	return result, nil
}

// containerLogs returns a LogsFunc reading the container's full stdout and
// stderr, demultiplexed from the engine's stream format.
func (e *DockerEngine) containerLogs(id string) LogsFunc {
	return func(ctx context.Context) ([]byte, error) {
		reader, err := e.apiClient.ContainerLogs(ctx, id, container.LogsOptions{
			ShowStdout: true,
			ShowStderr: true,
		})
		if err != nil {
			return nil, err
		}
		defer reader.Close() //nolint:errcheck
		var buf bytes.Buffer
		if _, err := stdcopy.StdCopy(&buf, &buf, reader); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// composeArgs builds the argument list for one compose CLI invocation, not
// including the command name itself.
func (e *DockerEngine) composeArgs(p *Project, verb string, extraArgs ...string) []string {
	args := append([]string(nil), e.composeCmd[1:]...)
	args = append(args, "--file", p.File(), "--project-name", p.Name(), verb)
	return append(args, extraArgs...)
}

func (e *DockerEngine) runCompose(ctx context.Context, p *Project, verb string, extraArgs ...string) error {
	args := e.composeArgs(p, verb, extraArgs...)

	cmd := exec.CommandContext(ctx, e.composeCmd[0], args...)
	cmd.Dir = p.Dir()
	e.logger.Printf("running: %s %s", e.composeCmd[0], strings.Join(args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("docker compose %s failed: %w\n%s", verb, err, output)
	}
	if len(output) > 0 {
		e.logger.Printf("docker compose %s:\n%s", verb, output)
	}
	return nil
}
