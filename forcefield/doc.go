/*Package forcefield implements molecular-mechanics parameter tables,
per-term energy/gradient calculations and the force-field engine that
binds the two together.

The engine consumes a Topology (the four interaction-term sequences of
a molecule) and an AtomTyper (the per-atom force-field type labels),
builds one Calculation per interaction term, and parameterizes each
from an immutable Table loaded from a line-oriented parameter file.
Terms whose atom types have no parameters stay unbound; all other terms
remain usable, so a caller can still evaluate the well-parameterized
subset of a molecule. Energies and analytic gradients are aggregated
over the bound calculations only.

A Table is immutable once loaded and may be shared by any number of
engines, also concurrently. An Engine is single-threaded.*/
package forcefield
