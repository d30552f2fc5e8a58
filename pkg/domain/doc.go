/*
Package domain contains the core models of the reversible pushdown automaton.

It defines the transition table, the symbols and directions that key it, the
stack, and the runtime snapshot of a machine. This package is kept pure and
free of I/O so it can be shared by the runtime, the validator and every adapter.

# Key Entities

  - Symbol: a single character, or Epsilon ("ep" in records).
  - Direction: Forward or Backward, selecting one half of the table.
  - Transition: a Key (direction, source, input, stack top) and a Value (destination, push).
  - Table: the immutable, insertion-ordered transition relation.
  - Machine: a Table plus its initial, final and reject states.
  - Snapshot: the (state, stack) pair of a running automaton.
*/
package domain
