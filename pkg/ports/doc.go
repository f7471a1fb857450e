/*
Package ports defines the driven ports (interfaces) of the automata module.

These interfaces decouple machine execution from where definitions come from and where run
reports end up, so the same run manager works against a directory, a loam vault, an in-memory
catalog or Redis.

# Key Interfaces

  - DefinitionLoader: Resolves machine definitions by ID (file system, loam, memory).
  - ReportStore: Persists run reports (memory, Redis).
  - DistributedLocker: Serialises concurrent runs of the same machine across replicas.
  - RunService: What the HTTP and MCP adapters drive.
*/
package ports
