/*
 * doc.go, part of chemkit.
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

/*Package chemkit provides atom and molecular-topology structures for
molecular-mechanics calculations.

The root package holds the connectivity model: atoms, bonds, and the
enumeration of the interaction terms (bond stretches, angle bends,
torsions and nonbonded pairs) that a force field evaluates. The
subpackages build on it:

	v3          fixed 3-column coordinate matrices and vector geometry
	forcefield  parameter tables, per-term calculations and the
	            force-field engine
	ffplot      energy-profile plotting

A typical use builds a Topology, assigns an atom type to every atom,
loads a parameter Table and hands both to a forcefield.Engine, which
parameterizes every interaction term and evaluates total energies and
analytic gradients over a coordinate matrix.*/
package chemkit
