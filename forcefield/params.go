package forcefield

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Wildcard is the atom-type marker that matches any type. It is only
//legal in the outer positions of angle and torsion keys.
const Wildcard = "X"

//BondParameter holds the coefficients of a harmonic bond stretch
//between the types Type1 and Type2: force constant K and equilibrium
//length R0.
type BondParameter struct {
	Type1, Type2 string
	K            float64
	R0           float64
}

//AngleParameter holds the coefficients of a harmonic angle bend with
//vertex type Type2: force constant K and equilibrium angle Theta0,
//in degrees.
type AngleParameter struct {
	Type1, Type2, Type3 string
	K                   float64
	Theta0              float64
}

//TorsionParameter holds the four Fourier coefficients of a proper
//torsion around the central types Type2-Type3.
type TorsionParameter struct {
	Type1, Type2, Type3, Type4 string
	V1, V2, V3, V4             float64
}

//VdwParameter holds the nonbonded coefficients of one atom type:
//partial charge, Lennard-Jones sigma and epsilon. Pair coefficients
//are obtained by geometric-mean combination at setup time.
type VdwParameter struct {
	Type    string
	Charge  float64
	Sigma   float64
	Epsilon float64
}

//Table is an immutable set of force-field parameters. Once loaded it
//only answers lookups, so it is safe for concurrent use by any number
//of engines without synchronization.
type Table struct {
	bonds    []*BondParameter
	angles   []*AngleParameter
	torsions []*TorsionParameter
	vdw      map[string]*VdwParameter
	skipped  int
}

//LoadTable reads the parameter file at path and returns the resulting
//table. Files ending in .zst are transparently decompressed. A missing
//or unreadable file is a fatal error; malformed lines inside a readable
//file are skipped and counted instead (see Skipped).
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("forcefield: can't open parameter file: %w", err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("forcefield: can't decompress parameter file %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	return ReadTable(r)
}

//ReadTable parses a line-oriented parameter definition from r, with
//one record per line:
//
//	bond    TYPE1 TYPE2             K R0
//	angle   TYPE1 TYPE2 TYPE3       K THETA0
//	torsion TYPE1 TYPE2 TYPE3 TYPE4 V1 V2 V3 V4
//	vdw     TYPE                    CHARGE SIGMA EPSILON
//
//Text after a '#' is a comment. Malformed lines and duplicated
//fully-specified keys are skipped, not fatal.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{vdw: make(map[string]*VdwParameter)}
	scanner := bufio.NewScanner(r)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(strings.SplitN(scanner.Text(), "#", 2)[0])
		if line == "" {
			continue
		}
		if err := t.parseRecord(line); err != nil {
			t.skipped++
			log.Printf("forcefield: skipping parameter line %d: %v", nline, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("forcefield: can't read parameter data: %w", err)
	}
	return t, nil
}

func (t *Table) parseRecord(line string) error {
	l := strings.Fields(line)
	switch l[0] {
	case "bond":
		if len(l) != 5 {
			return fmt.Errorf("bond record needs 4 fields, got %d", len(l)-1)
		}
		v, err := parsefloats(l[3:]...)
		if err != nil {
			return err
		}
		if t.exactBond(l[1], l[2]) != nil {
			return fmt.Errorf("duplicate bond key %s-%s", l[1], l[2])
		}
		t.bonds = append(t.bonds, &BondParameter{Type1: l[1], Type2: l[2], K: v[0], R0: v[1]})
	case "angle":
		if len(l) != 6 {
			return fmt.Errorf("angle record needs 5 fields, got %d", len(l)-1)
		}
		v, err := parsefloats(l[4:]...)
		if err != nil {
			return err
		}
		if t.lookupAngle(l[1], l[2], l[3], false) != nil {
			return fmt.Errorf("duplicate angle key %s-%s-%s", l[1], l[2], l[3])
		}
		t.angles = append(t.angles, &AngleParameter{Type1: l[1], Type2: l[2], Type3: l[3], K: v[0], Theta0: v[1]})
	case "torsion":
		if len(l) != 9 {
			return fmt.Errorf("torsion record needs 8 fields, got %d", len(l)-1)
		}
		v, err := parsefloats(l[5:]...)
		if err != nil {
			return err
		}
		if t.lookupTorsion(l[1], l[2], l[3], l[4], false) != nil {
			return fmt.Errorf("duplicate torsion key %s-%s-%s-%s", l[1], l[2], l[3], l[4])
		}
		t.torsions = append(t.torsions,
			&TorsionParameter{Type1: l[1], Type2: l[2], Type3: l[3], Type4: l[4], V1: v[0], V2: v[1], V3: v[2], V4: v[3]})
	case "vdw":
		if len(l) != 5 {
			return fmt.Errorf("vdw record needs 4 fields, got %d", len(l)-1)
		}
		v, err := parsefloats(l[2:]...)
		if err != nil {
			return err
		}
		if _, dup := t.vdw[l[1]]; dup {
			return fmt.Errorf("duplicate vdw key %s", l[1])
		}
		t.vdw[l[1]] = &VdwParameter{Type: l[1], Charge: v[0], Sigma: v[1], Epsilon: v[2]}
	default:
		return fmt.Errorf("unknown record kind %q", l[0])
	}
	return nil
}

func parsefloats(fields ...string) ([]float64, error) {
	r := make([]float64, 0, len(fields))
	for _, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

//Skipped returns the number of lines that were skipped while the table
//was loaded, because they were malformed or duplicated a key.
func (t *Table) Skipped() int {
	return t.skipped
}

//Size returns the total number of records in the table.
func (t *Table) Size() int {
	return len(t.bonds) + len(t.angles) + len(t.torsions) + len(t.vdw)
}

//Bond returns the parameters for a bond between the types a and b,
//trying the key in both orders, or nil if the table has no entry.
func (t *Table) Bond(a, b string) *BondParameter {
	if a == "" || b == "" {
		return nil
	}
	return t.exactBond(a, b)
}

func (t *Table) exactBond(a, b string) *BondParameter {
	for _, p := range t.bonds {
		if (p.Type1 == a && p.Type2 == b) || (p.Type1 == b && p.Type2 == a) {
			return p
		}
	}
	return nil
}

//Angle returns the parameters for the angle key (a,b,c), with b the
//vertex type. The key is tried as given and reversed, exact matches
//first; if none exists, entries carrying the Wildcard marker in an
//outer position may match, the first one loaded winning. Returns nil
//if no entry matches.
func (t *Table) Angle(a, b, c string) *AngleParameter {
	if a == "" || b == "" || c == "" {
		return nil
	}
	if p := t.lookupAngle(a, b, c, false); p != nil {
		return p
	}
	return t.lookupAngle(a, b, c, true)
}

func (t *Table) lookupAngle(a, b, c string, wild bool) *AngleParameter {
	for _, p := range t.angles {
		if p.Type2 != b {
			continue
		}
		if matchOuter2(p.Type1, p.Type3, a, c, wild) {
			return p
		}
	}
	return nil
}

//Torsion returns the parameters for the torsion key (a,b,c,d). The key
//is tried as given and reversed, exact matches first and wildcard
//matches (outer positions only) second. Returns nil if no entry
//matches.
func (t *Table) Torsion(a, b, c, d string) *TorsionParameter {
	if a == "" || b == "" || c == "" || d == "" {
		return nil
	}
	if p := t.lookupTorsion(a, b, c, d, false); p != nil {
		return p
	}
	return t.lookupTorsion(a, b, c, d, true)
}

func (t *Table) lookupTorsion(a, b, c, d string, wild bool) *TorsionParameter {
	for _, p := range t.torsions {
		if p.Type2 == b && p.Type3 == c && matchOuter(p.Type1, a, wild) && matchOuter(p.Type4, d, wild) {
			return p
		}
		//the reversed key (a,b,c,d) == (d,c,b,a)
		if p.Type2 == c && p.Type3 == b && matchOuter(p.Type1, d, wild) && matchOuter(p.Type4, a, wild) {
			return p
		}
	}
	return nil
}

//matchOuter2 matches the outer positions (o1,o2) of a stored angle key
//against the queried types (a,b), in both orders: the vertex type is
//in the middle, so (a,b,c) and (c,b,a) name the same angle.
func matchOuter2(o1, o2, a, b string, wild bool) bool {
	return (matchOuter(o1, a, wild) && matchOuter(o2, b, wild)) ||
		(matchOuter(o1, b, wild) && matchOuter(o2, a, wild))
}

//matchOuter matches one stored outer key position against a queried
//type. If wild is set, the Wildcard marker in the stored position
//matches anything.
func matchOuter(stored, queried string, wild bool) bool {
	if wild && stored == Wildcard {
		return true
	}
	return stored == queried
}

//Vdw returns the nonbonded parameters of the single type a, or nil if
//the table has no entry for it.
func (t *Table) Vdw(a string) *VdwParameter {
	if a == "" {
		return nil
	}
	return t.vdw[a]
}
