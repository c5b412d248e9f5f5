/*
Package domain contains the core models of the Waypoint tour engine.

It defines what a tour is made of and how a running tour is observed. The
package is kept pure and free of I/O, rendering and persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Step: One stop in a tour (target locator, content, placement and optional hooks).
  - Tour: An immutable, ordered, non-empty sequence of Steps.
  - Session: Snapshot of the tour in progress (ID, step index, status).
  - Outcome: What the completion callback receives when a session ends.
  - LifecycleHooks: Observability callbacks (step enter/leave, soft faults, tour end).
*/
package domain
