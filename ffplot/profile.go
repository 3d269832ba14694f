/*
 * profile.go, part of chemkit.
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

//Package ffplot renders energy profiles produced by the forcefield
//package into image files.
package ffplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/timostrunk/chemkit/forcefield"
	v3 "github.com/timostrunk/chemkit/v3"
)

func basicProfilePlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "E (kcal/mol)"
	return p
}

//Profile plots the energies y against the reaction coordinate x and
//writes the plot to plotname (the format is taken from the extension,
//e.g. .png or .svg). x and y must have the same, nonzero length.
func Profile(x, y []float64, title, xlabel, plotname string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("ffplot: Profile needs matching nonempty x and y, got %d and %d", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	p := basicProfilePlot(title, xlabel)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("ffplot: %w", err)
	}
	p.Add(line)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return fmt.Errorf("ffplot: can't save plot: %w", err)
	}
	return nil
}

//EnergySeries evaluates the engine's total energy for each coordinate
//set in frames and returns the resulting series, e.g. along a scan or
//a trajectory. The engine must already be set up against the topology
//the frames belong to.
func EnergySeries(E *forcefield.Engine, frames []*v3.Matrix) []float64 {
	energies := make([]float64, len(frames))
	for i, f := range frames {
		energies[i] = E.Energy(f)
	}
	return energies
}

//EnergyProfile is a convenience wrapper that evaluates EnergySeries over
//frames and plots it against x with Profile.
func EnergyProfile(E *forcefield.Engine, frames []*v3.Matrix, x []float64, title, xlabel, plotname string) error {
	if len(frames) != len(x) {
		return fmt.Errorf("ffplot: EnergyProfile needs one x value per frame, got %d and %d", len(x), len(frames))
	}
	return Profile(x, EnergySeries(E, frames), title, xlabel, plotname)
}
