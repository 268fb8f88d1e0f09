// Command composetest brings a compose service group up the same way the fixture
// harness does in a test run, prints the resolved endpoints, and waits. On
// interrupt it tears the group down, reporting container logs first. It exists
// for debugging project definitions outside a test run.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/composetest/composetest/fixtures"
	"github.com/composetest/composetest/framework"
)

var headerColor = color.New(color.Bold)            //nolint:gochecknoglobals
var endpointColor = color.New(color.FgCyan)        //nolint:gochecknoglobals
var noEndpointsColor = color.New(color.FgYellow)   //nolint:gochecknoglobals
var shutdownColor = color.New(color.Faint)         //nolint:gochecknoglobals

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	if err := run(params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(params commandParams) error {
	ctx := context.Background()

	logger := framework.NullLogger()
	if params.debug {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	manager, err := fixtures.NewManager(ctx, fixtures.Config{
		ComposeFile: params.composeFile,
		ProjectName: params.projectName,
		NoBuild:     params.noBuild,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	group, err := manager.Acquire(ctx)
	if err != nil {
		return err
	}

	printEndpoints(group)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	<-interrupted

	_, _ = shutdownColor.Println("shutting down...")
	return manager.Release(ctx, group)
}

func printEndpoints(group *fixtures.Group) {
	for _, c := range group.Containers() {
		_, _ = headerColor.Printf("%s (%s)\n", c.Name, c.Service)
		if len(c.NetworkInfo) == 0 {
			_, _ = noEndpointsColor.Println("  no published ports")
			continue
		}
		for _, ep := range c.NetworkInfo {
			_, _ = endpointColor.Printf("  %-12s -> %s:%d\n", string(ep.ContainerPort), ep.Hostname, ep.HostPort)
		}
	}
	fmt.Println()
	fmt.Println("services are up; press Ctrl-C to stop them")
}
