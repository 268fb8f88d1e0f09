// Package framework contains low-level support code that is shared by the other
// packages in this module and is not specific to docker-compose. The base package
// contains the Logger abstraction; the compose engine and the fixture manager both
// accept a Logger so that diagnostic output can be routed into whatever logging a
// test suite already uses, or silenced entirely with NullLogger.
package framework
