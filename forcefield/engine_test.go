package forcefield

import (
	"fmt"
	"math"
	"strings"
	"testing"

	chem "github.com/timostrunk/chemkit"
	v3 "github.com/timostrunk/chemkit/v3"
)

//carbonChain builds a linear all-CT topology of n atoms.
func carbonChain(Te *testing.T, n int) *chem.Topology {
	ats := make([]*chem.Atom, 0, n)
	for i := 0; i < n; i++ {
		ats = append(ats, &chem.Atom{Name: fmt.Sprintf("C%d", i+1), Symbol: "C", Type: "CT"})
	}
	top, err := chem.NewTopology(ats)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < n-1; i++ {
		if err := top.AddBond(i, i+1); err != nil {
			Te.Fatal(err)
		}
	}
	return top
}

//TestEngineSetup checks that the engine builds one calculation per
//interaction term, in the kind order bonds, angles, torsions,
//nonbonded, and that a fully covered topology sets up cleanly.
func TestEngineSetup(Te *testing.T) {
	E := NewEngine(miniTable(Te), nil) //the topology is its own typer
	if !E.Setup(carbonChain(Te, 4)) {
		Te.Fatal("a fully parameterized topology should set up cleanly")
	}
	if E.Count() != 7 { //3 bonds + 2 angles + 1 torsion + 1 nonbonded pair
		Te.Fatal("expected 7 calculations for a 4-chain, got", E.Count())
	}
	wantKinds := []Kind{BondStretch, BondStretch, BondStretch, AngleBend, AngleBend, Torsion, Nonbonded}
	for i, k := range wantKinds {
		if E.Kind(i) != k {
			Te.Error("wrong kind at", i, ":", E.Kind(i), "want", k)
		}
		if !E.IsSetUp(i) {
			Te.Error("calculation", i, "should be set up")
		}
	}
	if ats := E.Calculation(3).Atoms(); len(ats) != 3 || ats[0] != 0 || ats[1] != 1 || ats[2] != 2 {
		Te.Error("wrong atoms for the first angle:", ats)
	}
	if E.Flags()&AnalyticGradient == 0 {
		Te.Error("the engine should advertise analytic gradients")
	}
}

//TestEnginePartialFailure removes the only matching torsion record and
//checks that the torsion term alone stays unbound while every other
//term still evaluates.
func TestEnginePartialFailure(Te *testing.T) {
	var holed []string
	for _, l := range strings.Split(miniParams, "\n") {
		if strings.HasPrefix(l, "torsion") {
			continue
		}
		holed = append(holed, l)
	}
	t, err := ReadTable(strings.NewReader(strings.Join(holed, "\n")))
	if err != nil {
		Te.Fatal(err)
	}
	E := NewEngine(t, nil)
	if E.Setup(carbonChain(Te, 4)) {
		Te.Fatal("setup should report the missing torsion parameters")
	}
	if E.Count() != 7 {
		Te.Error("failed terms should still be counted, got", E.Count())
	}
	for i := 0; i < E.Count(); i++ {
		bound := E.IsSetUp(i)
		if E.Kind(i) == Torsion && bound {
			Te.Error("the torsion term should be unbound")
		}
		if E.Kind(i) != Torsion && !bound {
			Te.Error("term", i, "should be bound")
		}
	}
	coords := testCoords(Te)
	energy, grad := E.Compute(coords)
	if math.IsNaN(energy) || grad == nil {
		Te.Fatal("the covered subset should still evaluate")
	}
	//the unbound torsion contributes nothing: against a full table, only
	//the torsion energy differs.
	full := NewEngine(miniTable(Te), nil)
	full.Setup(carbonChain(Te, 4))
	tors := full.Calculation(5)
	if d := full.Energy(coords) - energy - tors.Energy(coords); math.Abs(d) > 1e-9 {
		Te.Error("unbound terms should contribute exactly nothing, difference", d)
	}
}

//TestEngineCompute checks that Compute agrees with the separate Energy
//and Gradient calls, and that the total gradient matches finite
//differences of the total energy.
func TestEngineCompute(Te *testing.T) {
	E := NewEngine(miniTable(Te), nil)
	if !E.Setup(carbonChain(Te, 4)) {
		Te.Fatal("setup failed")
	}
	coords := testCoords(Te)
	energy, grad := E.Compute(coords)
	if d := math.Abs(energy - E.Energy(coords)); d > 1e-12 {
		Te.Error("Compute and Energy disagree by", d)
	}
	g2 := E.Gradient(coords)
	const h = 1e-5
	for i := 0; i < 4; i++ {
		for k := 0; k < 3; k++ {
			if d := math.Abs(grad.At(i, k) - g2.At(i, k)); d > 1e-12 {
				Te.Error("Compute and Gradient disagree at", i, k)
			}
			orig := coords.At(i, k)
			coords.Set(i, k, orig+h)
			ep := E.Energy(coords)
			coords.Set(i, k, orig-h)
			em := E.Energy(coords)
			coords.Set(i, k, orig)
			num := (ep - em) / (2 * h)
			if math.Abs(grad.At(i, k)-num) > 1e-4*math.Max(1, math.Abs(num)) {
				Te.Errorf("total gradient mismatch at %d,%d: analytic %g numeric %g",
					i, k, grad.At(i, k), num)
			}
		}
	}
}

//TestEngineResetup: a second Setup discards the first set of
//calculations entirely.
func TestEngineResetup(Te *testing.T) {
	E := NewEngine(miniTable(Te), nil)
	top := carbonChain(Te, 4)
	if !E.Setup(top) {
		Te.Fatal("setup failed")
	}
	//setting up twice against the same topology must reproduce the same
	//collection: size, per-index outcome and coefficients.
	first := make([][]float64, E.Count())
	for i := range first {
		first[i] = E.Calculation(i).Coefficients()
	}
	if !E.Setup(top) {
		Te.Fatal("second setup failed")
	}
	if E.Count() != len(first) {
		Te.Fatal("re-setup changed the calculation count:", E.Count())
	}
	for i := range first {
		co := E.Calculation(i).Coefficients()
		if len(co) != len(first[i]) {
			Te.Fatal("re-setup changed the coefficients at", i)
		}
		for k := range co {
			if co[k] != first[i][k] {
				Te.Error("re-setup changed coefficient", k, "of calculation", i)
			}
		}
	}
	if !E.Setup(carbonChain(Te, 2)) {
		Te.Fatal("re-setup failed")
	}
	if E.Count() != 1 { //one bond, nothing else
		Te.Error("re-setup should discard the old calculations, got", E.Count())
	}
	if E.Kind(0) != BondStretch {
		Te.Error("wrong kind after re-setup:", E.Kind(0))
	}
	//a nil topology fails without touching the engine.
	if E.Setup(nil) {
		Te.Error("nil topology should fail setup")
	}
	if E.Count() != 1 {
		Te.Error("failed setup should leave the engine unchanged")
	}
}

//TestEngineEmptyTopology: zero atoms is a valid, if boring, system.
func TestEngineEmptyTopology(Te *testing.T) {
	top, err := chem.NewTopology([]*chem.Atom{})
	if err != nil {
		Te.Fatal(err)
	}
	E := NewEngine(miniTable(Te), nil)
	if !E.Setup(top) {
		Te.Error("an empty topology should set up successfully")
	}
	if E.Count() != 0 {
		Te.Error("an empty topology should yield no calculations, got", E.Count())
	}
	energy, grad := E.Compute(nil)
	if energy != 0 || grad != nil {
		Te.Error("an empty system should have zero energy and no gradient")
	}
}

//TestEngineTyperPrecedence: an explicit typer wins over the topology's
//own types.
func TestEngineTyperPrecedence(Te *testing.T) {
	//a typer that knows no types at all: every term must fail even
	//though the topology is fully typed.
	E := NewEngine(miniTable(Te), chem.TypeMap{})
	if E.Setup(carbonChain(Te, 2)) {
		Te.Error("an explicit empty typer should make setup fail")
	}
	if E.Count() != 1 || E.IsSetUp(0) {
		Te.Error("the failed term should be kept, unbound")
	}
}

func TestEnginePanics(Te *testing.T) {
	E := NewEngine(miniTable(Te), nil)
	func() {
		defer func() {
			if recover() == nil {
				Te.Error("Energy before Setup should panic")
			}
		}()
		E.Energy(testCoords(Te))
	}()
	if !E.Setup(carbonChain(Te, 4)) {
		Te.Fatal("setup failed")
	}
	func() {
		defer func() {
			if recover() == nil {
				Te.Error("a mismatched coordinate count should panic")
			}
		}()
		coords, _ := v3.NewMatrix([]float64{0, 0, 0})
		E.Energy(coords)
	}()
}
