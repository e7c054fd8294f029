// Package engine composes physical components into one steppable
// simulation and drives the per-step sequence.
//
// Components declare their variables through [Component.DeclareVariables];
// the engine merges the declarations into a vars.Registry, allocates a
// state.Container, and advances it with a fixed eight-stage step:
//
//  1. reset tendency fields
//  2. refresh input fields from forcing sources
//  3. fill boundary values of prognostic and closure-driven fields
//  4. forward closure transforms (initialization only)
//  5. ComputeAuxiliary on every component, in declaration order
//  6. ComputeTendencies on every component (additive accumulation)
//  7. integrator advances each driven field by its tendency
//  8. inverse closure transforms recover the primary views
//
// Every stage is a full barrier: the next stage reads fields the previous
// one just wrote. Components sharing a stage run sequentially in
// declaration order; a component reading a sibling's auxiliary output must
// be declared after that sibling. This ordering is a contract on component
// authors, not enforced here.
package engine
