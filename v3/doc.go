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

/*Package v3 implements matrices of 3D vectors, based on gonum's mat
package, together with the vector geometry (angles, dihedrals) needed
by molecular-mechanics calculations.

Within the package it is understood that a "vector" is a row vector,
i.e. the cartesian coordinates of one point in 3D space; a Matrix is a
set of such points, one per row.*/
package v3
