// Package vars defines variable declarations and the registry that merges
// declarations from a component tree into one ordered, conflict-checked set.
//
//   - [Descriptor]: immutable metadata for one named state quantity
//   - [Closure]: a bidirectional transform linking the two views of one
//     prognostic degree of freedom (e.g. temperature and internal energy)
//   - [Registry]: the merged declaration set for one composition level,
//     with one child registry per namespace
//
// A Registry is built once, never mutated, and may back any number of
// state containers (ensemble members share one Registry).
package vars
