/*
 * profile_test.go, part of chemkit.
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

package ffplot

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/timostrunk/chemkit"
	"github.com/timostrunk/chemkit/forcefield"
	v3 "github.com/timostrunk/chemkit/v3"
)

const testParams = `
bond CT CT 268.0 1.529
vdw  CT -0.18 3.50 0.066
`

//stretchScan builds an engine over a 2-atom molecule plus one frame
//per bond length in rs.
func stretchScan(Te *testing.T, rs []float64) (*forcefield.Engine, []*v3.Matrix) {
	t, err := forcefield.ReadTable(strings.NewReader(testParams))
	if err != nil {
		Te.Fatal(err)
	}
	ats := []*chem.Atom{
		{Name: "C1", Symbol: "C", Type: "CT"},
		{Name: "C2", Symbol: "C", Type: "CT"},
	}
	top, err := chem.NewTopology(ats)
	if err != nil {
		Te.Fatal(err)
	}
	if err := top.AddBond(0, 1); err != nil {
		Te.Fatal(err)
	}
	E := forcefield.NewEngine(t, nil)
	if !E.Setup(top) {
		Te.Fatal("setup failed")
	}
	frames := make([]*v3.Matrix, 0, len(rs))
	for _, r := range rs {
		f, err := v3.NewMatrix([]float64{0, 0, 0, r, 0, 0})
		if err != nil {
			Te.Fatal(err)
		}
		frames = append(frames, f)
	}
	return E, frames
}

func TestEnergySeries(Te *testing.T) {
	E, frames := stretchScan(Te, []float64{1.529, 1.6, 1.7})
	es := EnergySeries(E, frames)
	if len(es) != 3 || math.Abs(es[0]) > 1e-9 {
		Te.Error("the scan should start at the minimum:", es)
	}
	if !(es[0] < es[1] && es[1] < es[2]) {
		Te.Error("stretching past the minimum should raise the energy:", es)
	}
}

//TestEnergyProfile renders a bond-stretch scan to a PNG file.
func TestEnergyProfile(Te *testing.T) {
	rs := make([]float64, 0, 30)
	for r := 1.3; r < 1.9; r += 0.02 {
		rs = append(rs, r)
	}
	E, frames := stretchScan(Te, rs)
	plotname := filepath.Join(Te.TempDir(), "stretch.png")
	if err := EnergyProfile(E, frames, rs, "C-C stretch", "r (A)", plotname); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(plotname)
	if err != nil || fi.Size() == 0 {
		Te.Error("the plot file should exist and be nonempty")
	}
}

func TestProfileErrors(Te *testing.T) {
	if err := Profile(nil, nil, "t", "x", "nope.png"); err == nil {
		Te.Error("empty data should be an error")
	}
	if err := Profile([]float64{1, 2}, []float64{1}, "t", "x", "nope.png"); err == nil {
		Te.Error("mismatched lengths should be an error")
	}
	E, frames := stretchScan(Te, []float64{1.5})
	if err := EnergyProfile(E, frames, []float64{1, 2}, "t", "x", "nope.png"); err == nil {
		Te.Error("one x value per frame is required")
	}
}
