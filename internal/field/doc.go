// Package field provides the spatial substrate for land-surface simulations.
//
// The package defines the fundamental storage and execution types:
//
//   - [Grid]: a set of independent soil columns with a shared vertical layering
//   - [Field]: allocated storage for one quantity, lateral or full-column
//   - [Clock]: the shared simulation clock advanced once per step
//   - [BoundaryCondition]: fills surface/bottom ghost values of column fields
//   - [ParallelFor]: chunked parallel execution of per-cell kernels
//
// Fields are allocated once through a Grid and mutated in place afterwards;
// nothing in this package reallocates storage after setup.
//
// # Thread Safety
//
// Fields are not thread-safe. Kernels launched through ParallelFor must
// write disjoint index ranges, which the chunking guarantees.
package field
