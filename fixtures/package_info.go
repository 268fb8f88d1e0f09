// Package fixtures contains the lifecycle manager for a compose service group and
// the fixture surface that test code consumes.
//
// A Manager is created once per test run (typically in TestMain). Creating it
// resolves the compose project and, unless disabled, builds its images. Each
// fixture scope then runs one Acquire/Release cycle: Acquire refuses to start on
// top of leftover containers, brings the whole group up as a unit, and hands back
// a Group with a resolved endpoint list attached to every container; Release
// prints every container's captured logs into the test report and tears the
// group down, leaving built images in place for the next cycle.
//
// The PerTest/PerTestEndpoints/GroupFixture helpers bind Acquire/Release to go
// test's cleanup mechanism so that teardown runs on every exit path, including
// test failures.
package fixtures
