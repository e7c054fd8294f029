package vars

import (
	"errors"
	"testing"

	"github.com/esmtools/terrago/internal/field"
)

func noopTransform(FieldSource) error { return nil }

func testClosure(driven string) *Closure {
	return &Closure{
		Produces: Descriptor{
			Name:  driven,
			Shape: field.Column,
			Unit:  "J/m^3",
			Role:  Auxiliary,
		},
		Forward: noopTransform,
		Inverse: noopTransform,
	}
}

func TestBuildPartitionsRoles(t *testing.T) {
	tree := Tree{Contributions: []Contribution{{
		Component: "soil",
		Vars: []Descriptor{
			{Name: "temperature", Shape: field.Column, Unit: "K", Role: Prognostic},
			{Name: "conductivity", Shape: field.Column, Unit: "W/m/K", Role: Auxiliary},
			{Name: "air_temperature", Shape: field.Lateral, Unit: "K", Role: Input},
		},
	}}}

	r, err := Build(tree)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(r.Prognostic) != 1 || r.Prognostic[0].Name != "temperature" {
		t.Errorf("prognostic = %v", r.Prognostic)
	}
	if len(r.Tendencies) != 1 || r.Tendencies[0].Name != "temperature_tendency" {
		t.Errorf("tendencies = %v", r.Tendencies)
	}
	if r.Tendencies[0].Unit != "K/s" {
		t.Errorf("tendency unit = %q, want K/s", r.Tendencies[0].Unit)
	}
	if len(r.Auxiliary) != 1 || len(r.Inputs) != 1 {
		t.Errorf("auxiliary = %v inputs = %v", r.Auxiliary, r.Inputs)
	}
}

func TestBuildMergeIdempotent(t *testing.T) {
	shared := Descriptor{Name: "infiltration", Shape: field.Lateral, Unit: "m/s", Role: Auxiliary}
	tree := Tree{Contributions: []Contribution{
		{Component: "soilwater", Vars: []Descriptor{shared}},
		{Component: "runoff", Vars: []Descriptor{shared}},
	}}

	r, err := Build(tree)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(r.Auxiliary) != 1 {
		t.Errorf("expected one merged entry, got %d", len(r.Auxiliary))
	}
}

func TestBuildConflictNamesComponents(t *testing.T) {
	tree := Tree{Contributions: []Contribution{
		{Component: "soilwater", Vars: []Descriptor{
			{Name: "x", Shape: field.Column, Unit: "m", Role: Auxiliary},
		}},
		{Component: "soilheat", Vars: []Descriptor{
			{Name: "x", Shape: field.Column, Unit: "K", Role: Auxiliary},
		}},
	}}

	_, err := Build(tree)
	var conflict *VariableConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VariableConflictError, got %v", err)
	}
	if conflict.First != "soilwater" || conflict.Second != "soilheat" {
		t.Errorf("conflict attribution = %s/%s", conflict.First, conflict.Second)
	}
	if conflict.Name != "x" {
		t.Errorf("conflict name = %q", conflict.Name)
	}
}

func TestBuildSplicesClosureAfterOwner(t *testing.T) {
	tree := Tree{Contributions: []Contribution{{
		Component: "soil",
		Vars: []Descriptor{
			{Name: "early", Shape: field.Column, Unit: "1", Role: Auxiliary},
			{Name: "temperature", Shape: field.Column, Unit: "K", Role: Prognostic,
				Closure: testClosure("internal_energy")},
			{Name: "late", Shape: field.Column, Unit: "1", Role: Auxiliary},
		},
	}}}

	r, err := Build(tree)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []string{"early", "internal_energy", "late"}
	if len(r.Auxiliary) != len(want) {
		t.Fatalf("auxiliary count = %d, want %d", len(r.Auxiliary), len(want))
	}
	for i, name := range want {
		if r.Auxiliary[i].Name != name {
			t.Errorf("auxiliary[%d] = %q, want %q", i, r.Auxiliary[i].Name, name)
		}
	}

	cls := r.Closures()
	if len(cls) != 1 {
		t.Fatalf("closures = %d, want 1", len(cls))
	}
	if cls[0].Owner != "temperature" || cls[0].Driven != "internal_energy" ||
		cls[0].Tendency != "temperature_tendency" {
		t.Errorf("bound closure = %+v", cls[0])
	}
}

func TestBuildDropsShadowedInputs(t *testing.T) {
	// Shadowing must work regardless of which declaration comes first.
	trees := []Tree{
		{Contributions: []Contribution{
			{Component: "forcing", Vars: []Descriptor{
				{Name: "net_radiation", Shape: field.Lateral, Unit: "W/m^2", Role: Input},
			}},
			{Component: "surface", Vars: []Descriptor{
				{Name: "net_radiation", Shape: field.Lateral, Unit: "W/m^2", Role: Auxiliary},
			}},
		}},
		{Contributions: []Contribution{
			{Component: "surface", Vars: []Descriptor{
				{Name: "net_radiation", Shape: field.Lateral, Unit: "W/m^2", Role: Auxiliary},
			}},
			{Component: "forcing", Vars: []Descriptor{
				{Name: "net_radiation", Shape: field.Lateral, Unit: "W/m^2", Role: Input},
			}},
		}},
	}

	for i, tree := range trees {
		r, err := Build(tree)
		if err != nil {
			t.Fatalf("tree %d: %v", i, err)
		}
		if len(r.Inputs) != 0 {
			t.Errorf("tree %d: shadowed input survived: %v", i, r.Inputs)
		}
		if len(r.Auxiliary) != 1 {
			t.Errorf("tree %d: auxiliary = %v", i, r.Auxiliary)
		}
	}
}

func TestBuildInputConflict(t *testing.T) {
	tree := Tree{Contributions: []Contribution{
		{Component: "a", Vars: []Descriptor{
			{Name: "precip", Shape: field.Lateral, Unit: "m/s", Role: Input},
		}},
		{Component: "b", Vars: []Descriptor{
			{Name: "precip", Shape: field.Lateral, Unit: "mm/h", Role: Input},
		}},
	}}

	var conflict *VariableConflictError
	_, err := Build(tree)
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VariableConflictError, got %v", err)
	}
}

func TestBuildNamespaces(t *testing.T) {
	tree := Tree{
		Contributions: []Contribution{{
			Component: "top",
			Vars: []Descriptor{
				{Name: "albedo", Shape: field.Lateral, Unit: "1", Role: Auxiliary},
			},
		}},
		Children: []ChildTree{{
			Name: "soil",
			Tree: Tree{Contributions: []Contribution{{
				Component: "soilheat",
				Vars: []Descriptor{
					{Name: "temperature", Shape: field.Column, Unit: "K", Role: Prognostic},
				},
			}}},
		}},
	}

	r, err := Build(tree)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	sub, ok := r.Namespace("soil")
	if !ok {
		t.Fatal("missing soil namespace")
	}
	if len(sub.Prognostic) != 1 {
		t.Errorf("child prognostic = %v", sub.Prognostic)
	}
	if r.NumVars() != 3 {
		t.Errorf("NumVars = %d, want 3", r.NumVars())
	}
}

func TestBuildNamespaceNameCollision(t *testing.T) {
	tree := Tree{
		Contributions: []Contribution{{
			Component: "top",
			Vars: []Descriptor{
				{Name: "soil", Shape: field.Lateral, Unit: "1", Role: Auxiliary},
			},
		}},
		Children: []ChildTree{{Name: "soil"}},
	}

	var conflict *VariableConflictError
	if _, err := Build(tree); !errors.As(err, &conflict) {
		t.Fatalf("expected VariableConflictError, got %v", err)
	}
}

func TestBuildRejectsMisuse(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
	}{
		{"closure on auxiliary", Descriptor{
			Name: "a", Shape: field.Column, Unit: "1", Role: Auxiliary,
			Closure: testClosure("b"),
		}},
		{"constructor on prognostic", Descriptor{
			Name: "c", Shape: field.Column, Unit: "1", Role: Prognostic,
			Construct: func(*field.Grid, *field.Clock, FieldSource) (*field.Field, error) {
				return nil, nil
			},
		}},
		{"default on auxiliary", Descriptor{
			Name: "d", Shape: field.Lateral, Unit: "1", Role: Auxiliary,
			Default: 1, HasDefault: true,
		}},
		{"closure producing tendency name", Descriptor{
			Name: "e", Shape: field.Column, Unit: "1", Role: Prognostic,
			Closure: testClosure("e_tendency"),
		}},
	}

	for _, tc := range cases {
		tree := Tree{Contributions: []Contribution{{Component: "bad", Vars: []Descriptor{tc.d}}}}
		if _, err := Build(tree); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
