/*
 * chem.go, part of chemkit.
 *
 * Copyright 2013 Timo Strunk
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemkit

import "fmt"

/**Note: some functions here panic instead of returning errors. Those are
 * "fundamental" functions: if something goes wrong in them the program is
 * most likely wrong and should crash, most commonly because of an
 * out-of-bounds atom index.**/

//Atom contains the per-atom information relevant to a molecular-mechanics
//calculation. Coordinates are kept separately, in a v3.Matrix.
type Atom struct {
	Name   string
	Symbol string
	Type   string //force-field atom type. Empty means not typed.
	Charge float64
	Mass   float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("chemkit: Attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	return at
}

//Topology contains the connectivity of a molecule: its atoms and the bonds
//between them, from which the four interaction-term sequences consumed by a
//force field are derived. It is not expected to change during an evaluation.
type Topology struct {
	atoms []*Atom
	bonds [][2]int
	//neighbor lists, parallel to atoms, in bond-insertion order.
	adj [][]int
}

//NewTopology makes a topology with the given atoms and no bonds.
//It returns an error if ats is nil.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("chemkit: Supplied a nil atom slice")
	}
	T := new(Topology)
	T.atoms = ats
	T.adj = make([][]int, len(ats))
	return T, nil
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Atom returns the Atom corresponding to the index i.
//Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= T.Len() {
		panic("chemkit: Requested Atom out of bounds")
	}
	return T.atoms[i]
}

//AddAtom appends an atom at the end of the topology.
func (T *Topology) AddAtom(at *Atom) {
	T.atoms = append(T.atoms, at)
	T.adj = append(T.adj, nil)
}

//AddBond adds a bond between atoms i and j. It returns an error if either
//index is out of range, if i==j, or if the bond is already present.
func (T *Topology) AddBond(i, j int) error {
	if i < 0 || j < 0 || i >= T.Len() || j >= T.Len() {
		return NewError(fmt.Sprintf("chemkit: Bond indexes (%d,%d) out of range", i, j))
	}
	if i == j {
		return NewError(fmt.Sprintf("chemkit: Atom %d can not bond itself", i))
	}
	if T.Bonded(i, j) {
		return NewError(fmt.Sprintf("chemkit: Atoms %d and %d are already bonded", i, j))
	}
	T.bonds = append(T.bonds, [2]int{i, j})
	T.adj[i] = append(T.adj[i], j)
	T.adj[j] = append(T.adj[j], i)
	return nil
}

//Bonded returns whether atoms i and j share a bond.
func (T *Topology) Bonded(i, j int) bool {
	if i < 0 || j < 0 || i >= T.Len() || j >= T.Len() {
		return false
	}
	for _, v := range T.adj[i] {
		if v == j {
			return true
		}
	}
	return false
}

//AtomType returns the force-field type assigned to atom i, or the
//empty string if the atom has no type or the index is out of range.
//A missing type is a parameterization failure for the terms involving
//the atom, not a crash.
func (T *Topology) AtomType(i int) string {
	if i < 0 || i >= T.Len() {
		return ""
	}
	return T.atoms[i].Type
}

//BondedInteractions returns the bonded pairs of the topology, in bond
//insertion order.
func (T *Topology) BondedInteractions() [][2]int {
	r := make([][2]int, len(T.bonds))
	copy(r, T.bonds)
	return r
}

//AngleInteractions returns the angle triples (a,b,c), b being the vertex,
//enumerated by increasing vertex index and, within a vertex, by the
//insertion order of the bonds to its neighbors.
func (T *Topology) AngleInteractions() [][3]int {
	var r [][3]int
	for b := 0; b < T.Len(); b++ {
		nb := T.adj[b]
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				r = append(r, [3]int{nb[x], b, nb[y]})
			}
		}
	}
	return r
}

//TorsionInteractions returns the proper-torsion quadruples (a,b,c,d),
//enumerated by the insertion order of the central bond (b,c) and, within
//a central bond, by the insertion order of the outer neighbors. Quadruples
//where the outer atoms coincide (3-membered rings) are skipped.
func (T *Topology) TorsionInteractions() [][4]int {
	var r [][4]int
	for _, bond := range T.bonds {
		b, c := bond[0], bond[1]
		for _, a := range T.adj[b] {
			if a == c {
				continue
			}
			for _, d := range T.adj[c] {
				if d == b || d == a {
					continue
				}
				r = append(r, [4]int{a, b, c, d})
			}
		}
	}
	return r
}

//NonbondedInteractions returns the atom pairs subject to nonbonded
//interactions: every pair (i,j), i<j, that is neither bonded (1-2) nor
//bonded to a common atom (1-3). Pairs are enumerated by increasing i,
//then increasing j.
func (T *Topology) NonbondedInteractions() [][2]int {
	var r [][2]int
	for i := 0; i < T.Len(); i++ {
		for j := i + 1; j < T.Len(); j++ {
			if T.Bonded(i, j) || T.oneThree(i, j) {
				continue
			}
			r = append(r, [2]int{i, j})
		}
	}
	return r
}

//oneThree returns whether i and j are both bonded to a common atom.
func (T *Topology) oneThree(i, j int) bool {
	for _, v := range T.adj[i] {
		if T.Bonded(v, j) {
			return true
		}
	}
	return false
}

//TypeMap assigns force-field atom types by atom index. It is a
//convenience for callers that type atoms externally to the topology.
type TypeMap map[int]string

//AtomType returns the type assigned to atom i, or the empty string.
func (M TypeMap) AtomType(i int) string {
	return M[i]
}
