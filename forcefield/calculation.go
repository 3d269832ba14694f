package forcefield

import (
	"fmt"
	"math"

	v3 "github.com/timostrunk/chemkit/v3"
)

const deg2rad = math.Pi / 180

//coulombConstant converts q1*q2/r, with charges in electron charges and
//r in Angstroms, to kcal/mol.
const coulombConstant = 332.0637

//tiny guards the gradient kernels against degenerate geometries
//(coincident atoms, collinear angles). Terms at such geometries
//contribute a zero gradient instead of NaNs.
const tiny = 1e-10

//Calculation is one interaction term of a force field: a fixed tuple
//of atom indices plus, once set up, the coefficients bound from a
//parameter table. A calculation is created by an Engine during Setup
//and owned by it; the atom indices are opaque handles into the caller's
//topology and are not validated here.
type Calculation struct {
	kind    Kind
	atoms   [4]int
	isSetup bool
	//bound coefficients. Which fields are meaningful depends on kind.
	k, eq          float64    //bond: K, R0. angle: K, Theta0 in radians.
	v              [4]float64 //torsion Fourier coefficients
	sigma, epsilon float64    //combined Lennard-Jones pair coefficients
	qq             float64    //product of the partial charges
}

//NewCalculation builds a calculation of the given kind over the given
//atom indices. Panics if the number of atoms does not match the arity
//of the kind; that is a programming error, not a recoverable one.
func NewCalculation(kind Kind, atoms ...int) *Calculation {
	if len(atoms) != kind.Arity() {
		panic(fmt.Sprintf("forcefield: a %v calculation needs %d atoms, got %d", kind, kind.Arity(), len(atoms)))
	}
	C := &Calculation{kind: kind}
	copy(C.atoms[:], atoms)
	return C
}

//Kind returns the kind of the calculation.
func (C *Calculation) Kind() Kind {
	return C.kind
}

//Atoms returns a copy of the calculation's atom-index tuple, in order.
func (C *Calculation) Atoms() []int {
	r := make([]int, C.kind.Arity())
	copy(r, C.atoms[:C.kind.Arity()])
	return r
}

//SetUp reports whether the calculation has its coefficients bound.
func (C *Calculation) SetUp() bool {
	return C.isSetup
}

//Coefficients returns the bound coefficients, or nil for a calculation
//that is not set up. Bond: K, R0. Angle: K, Theta0 (radians). Torsion:
//V1..V4. Nonbonded: combined sigma, epsilon and the charge product.
func (C *Calculation) Coefficients() []float64 {
	if !C.isSetup {
		return nil
	}
	switch C.kind {
	case BondStretch, AngleBend:
		return []float64{C.k, C.eq}
	case Torsion:
		return []float64{C.v[0], C.v[1], C.v[2], C.v[3]}
	case Nonbonded:
		return []float64{C.sigma, C.epsilon, C.qq}
	}
	panic("forcefield: invalid calculation kind")
}

//Setup derives the calculation's type key from the typer, consulted
//exactly once per atom, resolves the coefficients from the table and
//binds them. It returns true iff a matching record (exact or wildcard)
//was found. On failure the calculation is left unbound and no other
//state changes.
func (C *Calculation) Setup(table *Table, typer AtomTyper) bool {
	if table == nil || typer == nil {
		return false
	}
	var types [4]string
	for i := 0; i < C.kind.Arity(); i++ {
		types[i] = typer.AtomType(C.atoms[i])
		if types[i] == "" {
			return false
		}
	}
	switch C.kind {
	case BondStretch:
		p := table.Bond(types[0], types[1])
		if p == nil {
			return false
		}
		C.k, C.eq = p.K, p.R0
	case AngleBend:
		p := table.Angle(types[0], types[1], types[2])
		if p == nil {
			return false
		}
		C.k, C.eq = p.K, p.Theta0*deg2rad
	case Torsion:
		p := table.Torsion(types[0], types[1], types[2], types[3])
		if p == nil {
			return false
		}
		C.v = [4]float64{p.V1, p.V2, p.V3, p.V4}
	case Nonbonded:
		pa := table.Vdw(types[0])
		pb := table.Vdw(types[1])
		if pa == nil || pb == nil {
			return false
		}
		C.sigma = math.Sqrt(pa.Sigma * pb.Sigma)
		C.epsilon = math.Sqrt(pa.Epsilon * pb.Epsilon)
		C.qq = pa.Charge * pb.Charge
	}
	C.isSetup = true
	return true
}

//Energy returns the potential energy of the term for the given
//coordinates (one row per atom of the whole system). Calling Energy on
//a calculation that is not set up is a programming error and panics.
func (C *Calculation) Energy(coords *v3.Matrix) float64 {
	if !C.isSetup {
		panic("forcefield: Energy called on a calculation that is not set up")
	}
	switch C.kind {
	case BondStretch:
		d := distance(coords, C.atoms[0], C.atoms[1]) - C.eq
		return 0.5 * C.k * d * d
	case AngleBend:
		u := v3.Zeros(1)
		w := v3.Zeros(1)
		u.Sub(coords.VecView(C.atoms[0]), coords.VecView(C.atoms[1]))
		w.Sub(coords.VecView(C.atoms[2]), coords.VecView(C.atoms[1]))
		d := v3.Angle(u, w) - C.eq
		return 0.5 * C.k * d * d
	case Torsion:
		phi := v3.Dihedral(coords.VecView(C.atoms[0]), coords.VecView(C.atoms[1]),
			coords.VecView(C.atoms[2]), coords.VecView(C.atoms[3]))
		return torsionEnergy(C.v, phi)
	case Nonbonded:
		r := distance(coords, C.atoms[0], C.atoms[1])
		sr6 := math.Pow(C.sigma/r, 6)
		return 4*C.epsilon*(sr6*sr6-sr6) + coulombConstant*C.qq/r
	}
	panic("forcefield: invalid calculation kind")
}

//Gradient returns the analytic derivative of Energy with respect to the
//coordinates of each atom in the calculation's tuple, one row per atom,
//in tuple order. Calling Gradient on a calculation that is not set up
//is a programming error and panics.
func (C *Calculation) Gradient(coords *v3.Matrix) *v3.Matrix {
	if !C.isSetup {
		panic("forcefield: Gradient called on a calculation that is not set up")
	}
	grad := v3.Zeros(C.kind.Arity())
	switch C.kind {
	case BondStretch:
		C.bondGradient(coords, grad)
	case AngleBend:
		C.angleGradient(coords, grad)
	case Torsion:
		C.torsionGradient(coords, grad)
	case Nonbonded:
		C.nonbondedGradient(coords, grad)
	}
	return grad
}

func (C *Calculation) bondGradient(coords, grad *v3.Matrix) {
	u := sub(rowvec(coords, C.atoms[0]), rowvec(coords, C.atoms[1]))
	r := norm(u)
	if r <= tiny {
		return
	}
	f := C.k * (r - C.eq) / r
	setRow(grad, 0, scalev(f, u))
	setRow(grad, 1, scalev(-f, u))
}

func (C *Calculation) angleGradient(coords, grad *v3.Matrix) {
	rb := rowvec(coords, C.atoms[1])
	u := sub(rowvec(coords, C.atoms[0]), rb)
	w := sub(rowvec(coords, C.atoms[2]), rb)
	lu := norm(u)
	lw := norm(w)
	if lu <= tiny || lw <= tiny {
		return
	}
	uh := scalev(1/lu, u)
	wh := scalev(1/lw, w)
	cost := dot(uh, wh)
	if cost > 1 {
		cost = 1
	} else if cost < -1 {
		cost = -1
	}
	sint := math.Sqrt(1 - cost*cost)
	if sint <= tiny { //collinear: the angle gradient is undefined
		return
	}
	pref := C.k * (math.Acos(cost) - C.eq)
	da := scalev(pref/(lu*sint), sub(scalev(cost, uh), wh))
	dc := scalev(pref/(lw*sint), sub(scalev(cost, wh), uh))
	setRow(grad, 0, da)
	setRow(grad, 1, scalev(-1, add(da, dc)))
	setRow(grad, 2, dc)
}

func (C *Calculation) torsionGradient(coords, grad *v3.Matrix) {
	r1 := rowvec(coords, C.atoms[0])
	r2 := rowvec(coords, C.atoms[1])
	r3 := rowvec(coords, C.atoms[2])
	r4 := rowvec(coords, C.atoms[3])
	b1 := sub(r2, r1)
	b2 := sub(r3, r2)
	b3 := sub(r4, r3)
	n1 := cross(b1, b2)
	n2 := cross(b2, b3)
	n1sq := dot(n1, n1)
	n2sq := dot(n2, n2)
	lb2 := norm(b2)
	if n1sq <= tiny || n2sq <= tiny || lb2 <= tiny {
		return
	}
	phi := math.Atan2(lb2*dot(b1, n2), dot(n1, n2))
	dE := torsionDeriv(C.v, phi)
	//dihedral derivatives with respect to the outer atoms
	d1 := scalev(-lb2/n1sq, n1)
	d4 := scalev(lb2/n2sq, n2)
	//projections of the outer bonds on the central one carry the
	//derivatives over to the inner atoms.
	s := dot(b1, b2) / (lb2 * lb2)
	t := dot(b3, b2) / (lb2 * lb2)
	setRow(grad, 0, scalev(dE, d1))
	setRow(grad, 1, scalev(dE, add(scalev(-(1+s), d1), scalev(t, d4))))
	setRow(grad, 2, scalev(dE, sub(scalev(s, d1), scalev(1+t, d4))))
	setRow(grad, 3, scalev(dE, d4))
}

func (C *Calculation) nonbondedGradient(coords, grad *v3.Matrix) {
	u := sub(rowvec(coords, C.atoms[0]), rowvec(coords, C.atoms[1]))
	r := norm(u)
	if r <= tiny {
		return
	}
	sr6 := math.Pow(C.sigma/r, 6)
	dEdr := 4*C.epsilon*(6*sr6-12*sr6*sr6)/r - coulombConstant*C.qq/(r*r)
	f := dEdr / r
	setRow(grad, 0, scalev(f, u))
	setRow(grad, 1, scalev(-f, u))
}

//torsionEnergy evaluates the OPLS-style Fourier series at the dihedral
//angle phi (radians). Being a pure cosine series, it is periodic by
//construction: phi and phi+2*pi give the same energy.
func torsionEnergy(v [4]float64, phi float64) float64 {
	return 0.5 * (v[0]*(1+math.Cos(phi)) + v[1]*(1-math.Cos(2*phi)) +
		v[2]*(1+math.Cos(3*phi)) + v[3]*(1-math.Cos(4*phi)))
}

func torsionDeriv(v [4]float64, phi float64) float64 {
	return 0.5 * (-v[0]*math.Sin(phi) + 2*v[1]*math.Sin(2*phi) -
		3*v[2]*math.Sin(3*phi) + 4*v[3]*math.Sin(4*phi))
}

//distance returns the distance between the atoms i and j of coords.
func distance(coords *v3.Matrix, i, j int) float64 {
	d := v3.Zeros(1)
	d.Sub(coords.VecView(i), coords.VecView(j))
	return d.Norm(2)
}

//Plain-array vector helpers for the gradient kernels, where gonum
//matrices would allocate on every intermediate.

type vec3 [3]float64

func rowvec(m *v3.Matrix, i int) vec3 {
	return vec3{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
}

func setRow(m *v3.Matrix, i int, v vec3) {
	m.Set(i, 0, v[0])
	m.Set(i, 1, v[1])
	m.Set(i, 2, v[2])
}

func sub(a, b vec3) vec3 {
	return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b vec3) vec3 {
	return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scalev(f float64, a vec3) vec3 {
	return vec3{f * a[0], f * a[1], f * a[2]}
}

func dot(a, b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(a vec3) float64 {
	return math.Sqrt(dot(a, a))
}
