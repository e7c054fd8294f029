package vars

// Closure links the two representations of one prognostic degree of
// freedom. The owning prognostic descriptor is the primary view, the thing
// other components read and write (temperature, saturation). Produces is
// the driven view, the quantity whose tendency is well-posed and which the
// integrator actually advances (internal energy, water content).
//
// Forward maps primary to driven and runs once at initialization, making
// the driven field consistent with user-specified initial primary values.
// Inverse maps driven back to primary and runs at the end of every step,
// after the integrator has advanced the driven field.
//
// Both transforms mutate existing fields of the container in place and
// never allocate. Transforms must be total over the declared domains of
// their descriptors; the framework performs no domain validation. Locally
// degenerate cells (zero-porosity denominators and the like) are the
// relation's own responsibility: divide protectively and yield a neutral
// value instead of propagating a non-finite result.
type Closure struct {
	// Produces is the driven-view auxiliary descriptor. Its name must be
	// distinct from the owner's name and the owner's tendency name, and
	// must never be declared separately by any component.
	Produces Descriptor

	Forward func(src FieldSource) error
	Inverse func(src FieldSource) error
}

// BoundClosure is a closure joined with the names it operates between,
// precomputed at registry build so orchestration needs no lookups.
type BoundClosure struct {
	Owner    string // primary-view prognostic variable
	Driven   string // closure-produced auxiliary variable
	Tendency string // tendency of the driven quantity
	Relation *Closure
}
