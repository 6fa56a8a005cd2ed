package externals

import (
	"fmt"
	"slices"
)

// External describes a request provided by the page rather than the bundle.
type External struct {
	Global GlobalPath `toml:"global" json:"global"`
	Handle string     `toml:"handle" json:"handle"`
}

// Table layers project specific externals and bundled packages on top of a
// base mapping. Overrides win over the base, bundled requests win over both.
type Table struct {
	base      Mapping
	overrides map[string]External
	bundled   []string
}

func NewTable(base Mapping, overrides map[string]External, bundled []string) (*Table, error) {
	if base == nil {
		base = WordPress()
	}

	for request, ext := range overrides {
		if len(ext.Global) == 0 {
			return nil, fmt.Errorf("external %q has an empty global path", request)
		}
		if slices.Contains(ext.Global, "") {
			return nil, fmt.Errorf("external %q has an empty global path segment", request)
		}
	}

	return &Table{
		base:      base,
		overrides: overrides,
		bundled:   slices.Clone(bundled),
	}, nil
}

func (t *Table) Global(request string) (GlobalPath, bool) {
	if slices.Contains(t.bundled, request) {
		return nil, false
	}
	if ext, ok := t.overrides[request]; ok {
		return slices.Clone(ext.Global), true
	}
	return t.base.Global(request)
}

func (t *Table) Handle(request string) (string, bool) {
	if slices.Contains(t.bundled, request) {
		return "", false
	}
	if ext, ok := t.overrides[request]; ok {
		if ext.Handle == "" {
			return "", false
		}
		return ext.Handle, true
	}
	return t.base.Handle(request)
}
