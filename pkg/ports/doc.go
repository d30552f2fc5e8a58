/*
Package ports defines the driven ports (interfaces) for the rpda engine.

These interfaces decouple the core logic from external implementations, allowing
machines to come from different sources and interactive sessions to be kept in
different storage backends.

# Key Interfaces

  - MachineLoader: Responsible for loading a Machine (e.g., from CSV, YAML or Memory).
  - SnapshotStore: Responsible for persisting and loading session Snapshots.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
