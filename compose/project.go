package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// The file names docker compose itself recognizes, in its own preference order.
var composeFileNames = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yaml",
	"docker-compose.yml",
}

// Project is an immutable handle for a resolved compose project definition. It is
// created once (normally per test run) and shared read-only by every fixture
// scope afterwards.
type Project struct {
	name     string
	file     string
	dir      string
	services []string
}

type projectOptions struct {
	name string
}

// ProjectOption is a configuration option for LoadProject.
type ProjectOption func(*projectOptions)

// WithProjectName overrides the compose project name, which otherwise defaults to
// a normalized form of the project directory's base name. The project name
// determines which running containers are considered part of the project.
func WithProjectName(name string) ProjectOption {
	return func(o *projectOptions) {
		o.name = name
	}
}

// LoadProject resolves path into a Project. The path may be a compose file or a
// directory containing one under any of the standard names. The file is parsed
// just far enough to enumerate the declared services; full validation is left to
// docker compose.
//
// A missing or unresolvable path returns an error wrapping ErrConfigNotFound.
func LoadProject(path string, opts ...ProjectOption) (*Project, error) {
	var options projectOptions
	for _, opt := range opts {
		opt(&options)
	}

	file, err := resolveComposeFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", file, err)
	}

	services, err := parseServiceNames(abs)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	name := options.name
	if name == "" {
		name = normalizeProjectName(filepath.Base(dir))
	}

	return &Project{name: name, file: abs, dir: dir, services: services}, nil
}

// Name returns the compose project name.
func (p *Project) Name() string { return p.name }

// File returns the absolute path of the compose file.
func (p *Project) File() string { return p.file }

// Dir returns the project's working directory (the compose file's directory).
func (p *Project) Dir() string { return p.dir }

// Services returns the service names declared in the compose file, sorted.
func (p *Project) Services() []string {
	return append([]string(nil), p.services...)
}

func resolveComposeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: unable to find %q", ErrConfigNotFound, path)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range composeFileNames {
		candidate := filepath.Join(path, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no compose file in directory %q", ErrConfigNotFound, path)
}

func parseServiceNames(file string) ([]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	var doc struct {
		Services map[string]yaml.Node `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	services := make([]string, 0, len(doc.Services))
	for name := range doc.Services {
		services = append(services, name)
	}
	sort.Strings(services)
	return services, nil
}

// normalizeProjectName applies the same normalization docker compose applies to a
// default project name: lowercased, with anything outside [a-z0-9_-] removed.
func normalizeProjectName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "_-")
}
