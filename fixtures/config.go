package fixtures

import (
	"flag"
	"io"
	"os"

	"github.com/composetest/composetest/framework"
)

// Config holds the options for a Manager. The zero value is usable: it resolves
// the compose file from the current directory, builds images, reports logs to
// standard output, and logs no diagnostics.
type Config struct {
	// ComposeFile is the path of the compose file, or of a directory containing
	// one under a standard name. Empty means the current directory.
	ComposeFile string

	// ProjectName overrides the compose project name. Empty means the default
	// derived from the project directory.
	ProjectName string

	// NoBuild skips the image build step when the Manager is created.
	NoBuild bool

	// Output receives the log report emitted during Release. Nil means os.Stdout,
	// which go test captures into the test report.
	Output io.Writer

	// Logger receives diagnostic output from the manager and the engine.
	Logger framework.Logger
}

// RegisterFlags binds the command-line-surfaced options to fs, using the same
// option names the original pytest plugin used. Call this from TestMain before
// flag parsing:
//
//	cfg := fixtures.Config{}
//	cfg.RegisterFlags(flag.CommandLine)
//	flag.Parse()
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ComposeFile, "docker-compose", ".",
		"path to the compose file, or a directory containing one")
	fs.BoolVar(&c.NoBuild, "docker-compose-no-build", false,
		"do not build images before starting containers")
}

func (c Config) composePath() string {
	if c.ComposeFile == "" {
		return "."
	}
	return c.ComposeFile
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c Config) logger() framework.Logger {
	if c.Logger == nil {
		return framework.NullLogger()
	}
	return c.Logger
}
