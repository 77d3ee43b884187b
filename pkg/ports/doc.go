/*
Package ports defines the driven ports (interfaces) for Tabula.

These interfaces decouple enumeration from persistence, so an enumeration
table computed once can be stored and restored by name on any backend.

# Key Interfaces

  - TableStore: Persists and loads enumeration snapshots (Memory, File, Redis).
  - DistributedLocker: Serializes writers of the same table across processes.
*/
package ports
