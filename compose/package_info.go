// Package compose defines the boundary between the fixture harness and the
// docker-compose engine: resolving a compose project definition, starting and
// stopping the project's containers, and reading back the port-binding metadata
// that tests need in order to connect to the running services.
//
// The Engine interface is the whole contract; DockerEngine is the real
// implementation, which drives the docker compose CLI for the build/up/down verbs
// and the Docker API for queries. Test code in other packages substitutes its own
// Engine.
package compose
