// Package state realizes a variable registry as allocated storage.
//
// A [Container] mirrors one vars.Registry 1:1: one field per descriptor,
// a shared clock, and one nested child container per namespace. Containers
// are allocated once at setup and only mutated in place afterwards; reset
// and copy operations never change field identity.
//
// The container exposes variables two ways: a single flat namespace for
// read access (Field, Resolve) and the internal four-way partition
// (prognostic, tendency, auxiliary, input) the step orchestrator needs.
// Closure transforms are dispatched through ApplyClosures and
// ApplyInverseClosures, operating in place on existing fields.
package state
