/*
Package domain contains the core models shared by the Tabula enumerator, the
tabulated adapter and every port implementation.

It describes factored decision-process domains: states built from object
instances whose attributes hold discrete values, and actions defined over that
representation. This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - State: A snapshot of object instances and their attribute values.
  - Action: The capability interface every domain action implements
    (applicability, single-sample execution, full transition distribution).
  - Domain: Object classes plus an ordered list of actions.
  - StateHasher: The caller-supplied equivalence abstraction used to deduplicate states.
  - Snapshot: The persisted form of an enumeration table.
*/
package domain
