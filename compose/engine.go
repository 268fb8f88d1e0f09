package compose

import "context"

// Engine is the control surface the harness needs from a compose implementation.
// All calls are synchronous and blocking; the engine may parallelize internally
// (docker compose starts services concurrently) but the harness does not care.
//
// Build, Up and Down have external side effects. Containers is a pure query.
type Engine interface {
	// Build builds the images for every service in the project.
	Build(ctx context.Context, p *Project) error

	// Up starts all declared services and returns the resulting containers.
	Up(ctx context.Context, p *Project) ([]*Container, error)

	// Down stops and removes the given containers along with the rest of the
	// project's runtime state. Built images and named volumes are left in place.
	Down(ctx context.Context, p *Project, containers []*Container) error

	// Containers lists the project's currently running containers.
	Containers(ctx context.Context, p *Project) ([]*Container, error)
}
