/*
Package session implements the run manager behind the HTTP and MCP adapters.

A Manager loads a definition, compiles it into a fresh machine, drives it with
a runner and persists the resulting report. Runs of the same machine/input pair
are serialized locally and, when a DistributedLocker is configured, across
replicas.
*/
package session
