package main

import (
	"flag"
	"fmt"
	"os"
)

type commandParams struct {
	composeFile string
	projectName string
	noBuild     bool
	debug       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.composeFile, "docker-compose", ".",
		"path to the compose file, or a directory containing one")
	fs.StringVar(&c.projectName, "project", "", "compose project name (default: derived from the directory)")
	fs.BoolVar(&c.noBuild, "docker-compose-no-build", false, "do not build images before starting containers")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}
