package forcefield

//Topology is the connectivity view consumed by an Engine: four ordered
//sequences of atom-index tuples, one per interaction kind. A topology
//with zero entries in all four sequences is valid (an isolated-atom
//system). chemkit.Topology implements this interface.
type Topology interface {
	//Len returns the number of atoms.
	Len() int

	//BondedInteractions returns the bonded pairs, in the topology's order.
	BondedInteractions() [][2]int

	//AngleInteractions returns the angle triples, vertex in the middle.
	AngleInteractions() [][3]int

	//TorsionInteractions returns the proper-torsion quadruples.
	TorsionInteractions() [][4]int

	//NonbondedInteractions returns the nonbonded pairs.
	NonbondedInteractions() [][2]int
}

//AtomTyper assigns a force-field atom type to each atom index. An empty
//string means the atom has no type; any term involving such an atom
//fails parameterization. chemkit.Topology and chemkit.TypeMap implement
//this interface.
type AtomTyper interface {
	AtomType(i int) string
}

//Kind discriminates the four interaction-term kinds.
type Kind int

const (
	BondStretch Kind = iota
	AngleBend
	Torsion
	Nonbonded
)

//Arity returns the number of atoms bound by a term of this kind.
func (k Kind) Arity() int {
	switch k {
	case BondStretch, Nonbonded:
		return 2
	case AngleBend:
		return 3
	case Torsion:
		return 4
	}
	panic("forcefield: invalid calculation kind")
}

func (k Kind) String() string {
	switch k {
	case BondStretch:
		return "bond stretch"
	case AngleBend:
		return "angle bend"
	case Torsion:
		return "torsion"
	case Nonbonded:
		return "nonbonded"
	}
	return "invalid"
}
