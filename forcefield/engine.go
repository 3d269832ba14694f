package forcefield

import (
	v3 "github.com/timostrunk/chemkit/v3"
)

//Flags are evaluation capabilities advertised by an Engine.
type Flags uint

const (
	//AnalyticGradient signals that the engine differentiates its terms
	//analytically instead of by finite differences.
	AnalyticGradient Flags = 1 << iota
)

//Engine evaluates the molecular-mechanics energy and gradient of a
//molecule. It is built around an immutable parameter Table, set up
//against a Topology, and then queried with coordinate sets. An Engine
//is not safe for concurrent use; the Table it holds is, so several
//engines may share one.
type Engine struct {
	table        *Table
	typer        AtomTyper
	calculations []*Calculation
	natoms       int
	ready        bool
}

//NewEngine returns an engine over the given parameter table. typer maps
//atom indices to force-field type labels; it may be nil, in which case
//Setup requires the topology itself to implement AtomTyper. A nil table
//is a programming error and panics.
func NewEngine(table *Table, typer AtomTyper) *Engine {
	if table == nil {
		panic("forcefield: NewEngine called with a nil table")
	}
	return &Engine{table: table, typer: typer}
}

//Flags returns the capabilities of the engine. The gradients here are
//always analytic.
func (E *Engine) Flags() Flags {
	return AnalyticGradient
}

//Table returns the parameter table the engine parameterizes from.
func (E *Engine) Table() *Table {
	return E.table
}

//Setup enumerates the interaction terms of top, builds one calculation
//per term and parameterizes each from the engine's table. It returns
//true iff every term was parameterized. On partial failure the engine
//keeps the terms that did parameterize, so Compute still evaluates the
//covered subset; Count and IsSetUp expose which terms failed. Calling
//Setup again discards all previous calculations. A nil topology fails
//without changing the engine.
func (E *Engine) Setup(top Topology) bool {
	if top == nil {
		return false
	}
	typer := E.typer
	if typer == nil {
		typer, _ = top.(AtomTyper)
		if typer == nil {
			return false
		}
	}
	calcs := make([]*Calculation, 0,
		len(top.BondedInteractions())+len(top.AngleInteractions())+
			len(top.TorsionInteractions())+len(top.NonbondedInteractions()))
	for _, b := range top.BondedInteractions() {
		calcs = append(calcs, NewCalculation(BondStretch, b[0], b[1]))
	}
	for _, a := range top.AngleInteractions() {
		calcs = append(calcs, NewCalculation(AngleBend, a[0], a[1], a[2]))
	}
	for _, d := range top.TorsionInteractions() {
		calcs = append(calcs, NewCalculation(Torsion, d[0], d[1], d[2], d[3]))
	}
	for _, n := range top.NonbondedInteractions() {
		calcs = append(calcs, NewCalculation(Nonbonded, n[0], n[1]))
	}
	ok := true
	for _, c := range calcs {
		if !c.Setup(E.table, typer) {
			ok = false
		}
	}
	E.calculations = calcs
	E.natoms = top.Len()
	E.ready = true
	return ok
}

//Count returns the number of calculations built by the last Setup.
func (E *Engine) Count() int {
	return len(E.calculations)
}

//Calculation returns the ith calculation of the engine. Panics if i is
//out of range or the engine has not been set up.
func (E *Engine) Calculation(i int) *Calculation {
	E.mustBeReady()
	if i < 0 || i >= len(E.calculations) {
		panic("forcefield: calculation index out of range")
	}
	return E.calculations[i]
}

//Kind returns the kind of the ith calculation. Panics like Calculation.
func (E *Engine) Kind(i int) Kind {
	return E.Calculation(i).Kind()
}

//IsSetUp reports whether the ith calculation found its parameters.
//Panics like Calculation.
func (E *Engine) IsSetUp(i int) bool {
	return E.Calculation(i).SetUp()
}

//Energy returns the total potential energy, in kcal/mol, of the bound
//calculations at the given coordinates (one row per atom of the
//topology the engine was set up with). Unbound calculations contribute
//nothing. Panics if the engine has not been set up or the coordinate
//count does not match the topology.
func (E *Engine) Energy(coords *v3.Matrix) float64 {
	E.mustMatch(coords)
	var energy float64
	for _, c := range E.calculations {
		if !c.SetUp() {
			continue
		}
		energy += c.Energy(coords)
	}
	return energy
}

//Gradient returns the analytic gradient of the total energy with
//respect to every atom's coordinates, as a matrix of the same shape as
//coords. Atoms appearing in no bound calculation get zero rows. Panics
//like Energy.
func (E *Engine) Gradient(coords *v3.Matrix) *v3.Matrix {
	E.mustMatch(coords)
	if E.natoms == 0 {
		return nil //gonum does not represent 0x3 matrices
	}
	grad := v3.Zeros(E.natoms)
	for _, c := range E.calculations {
		if !c.SetUp() {
			continue
		}
		g := c.Gradient(coords)
		for j, at := range c.Atoms() {
			for k := 0; k < 3; k++ {
				grad.Set(at, k, grad.At(at, k)+g.At(j, k))
			}
		}
	}
	return grad
}

//Compute evaluates energy and gradient in one pass over the bound
//calculations. Panics like Energy.
func (E *Engine) Compute(coords *v3.Matrix) (float64, *v3.Matrix) {
	E.mustMatch(coords)
	if E.natoms == 0 {
		return 0, nil
	}
	var energy float64
	grad := v3.Zeros(E.natoms)
	for _, c := range E.calculations {
		if !c.SetUp() {
			continue
		}
		energy += c.Energy(coords)
		g := c.Gradient(coords)
		for j, at := range c.Atoms() {
			for k := 0; k < 3; k++ {
				grad.Set(at, k, grad.At(at, k)+g.At(j, k))
			}
		}
	}
	return energy, grad
}

func (E *Engine) mustBeReady() {
	if !E.ready {
		panic("forcefield: engine used before Setup")
	}
}

func (E *Engine) mustMatch(coords *v3.Matrix) {
	E.mustBeReady()
	if E.natoms == 0 {
		return //an atomless system accepts any (even nil) coordinates
	}
	if coords == nil || coords.NVecs() != E.natoms {
		panic("forcefield: coordinate set does not match the topology")
	}
}
