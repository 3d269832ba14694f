package forcefield

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//Registry maps force-field names to parameter files. It is an explicit
//value handed to whoever needs to open engines by name; there is no
//package-level registry. Tables are immutable, so the registry caches
//them and hands the same one to every engine that asks.
type Registry struct {
	dir     string
	entries map[string]string
	tables  map[string]*Table
}

//NewRegistry returns an empty registry. Parameter paths registered on
//it are used as given.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string), tables: make(map[string]*Table)}
}

//Register adds (or replaces) the parameter file for the named force
//field. The path is resolved against the registry's manifest directory,
//if it was loaded from one.
func (R *Registry) Register(name, path string) {
	R.entries[name] = path
	delete(R.tables, name)
}

//manifest is the on-disk YAML layout:
//
//	forcefields:
//	  opls: opls.prm.zst
//	  tiny: tiny.prm
type manifest struct {
	ForceFields map[string]string `yaml:"forcefields"`
}

//LoadRegistry reads a YAML manifest from path and returns the registry
//it describes. Relative parameter paths in the manifest are taken
//relative to the manifest's own directory.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("forcefield: can't read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("forcefield: can't parse manifest %s: %w", path, err)
	}
	R := NewRegistry()
	R.dir = filepath.Dir(path)
	for name, p := range m.ForceFields {
		R.entries[name] = p
	}
	return R, nil
}

//Names returns the registered force-field names, sorted.
func (R *Registry) Names() []string {
	names := make([]string, 0, len(R.entries))
	for name := range R.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//ParameterPath returns the resolved parameter-file path for name, or an
//error if the name is not registered.
func (R *Registry) ParameterPath(name string) (string, error) {
	p, ok := R.entries[name]
	if !ok {
		return "", fmt.Errorf("forcefield: no force field named %q", name)
	}
	if R.dir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(R.dir, p)
	}
	return p, nil
}

//Table returns the parameter table of the named force field, loading
//it on first use.
func (R *Registry) Table(name string) (*Table, error) {
	if t, ok := R.tables[name]; ok {
		return t, nil
	}
	path, err := R.ParameterPath(name)
	if err != nil {
		return nil, err
	}
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	R.tables[name] = t
	return t, nil
}

//Open returns a fresh engine over the named force field's table. typer
//may be nil, as in NewEngine.
func (R *Registry) Open(name string, typer AtomTyper) (*Engine, error) {
	t, err := R.Table(name)
	if err != nil {
		return nil, err
	}
	return NewEngine(t, typer), nil
}
