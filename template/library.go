// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the serialisable form of a template, as found in library files:
//
//	templates:
//	  EDGE:
//	    b: [8, -1]
//	    z: -1
//	  SMOOTH_NL:
//	    a: [2]
//	    d: [0.5, 0.25]
//	    nonlinearity: pw_lin
//	    points: [{x: -1, y: -1}, {x: 1, y: 1}]
//	    coupling: y-y
//	    boundary: zeroflux
type Spec struct {
	A            []float64 `yaml:"a,omitempty"`
	B            []float64 `yaml:"b,omitempty"`
	D            []float64 `yaml:"d,omitempty"`
	Z            float64   `yaml:"z,omitempty"`
	Boundary     string    `yaml:"boundary,omitempty"`
	Nonlinearity string    `yaml:"nonlinearity,omitempty"`
	Points       []Point   `yaml:"points,omitempty"`
	Coupling     string    `yaml:"coupling,omitempty"`
	DT           float64   `yaml:"dt,omitempty"`
	TEnd         *float64  `yaml:"t_end,omitempty"`
}

// libraryFile is the on-disk layout of a template library.
type libraryFile struct {
	Templates map[string]Spec `yaml:"templates"`
}

// Build validates s and constructs the named template.
func (s Spec) Build(name string) (*Template, error) {
	opts := []Option{WithName(name), WithA(s.A...), WithB(s.B...), WithD(s.D...), WithZ(s.Z)}
	if s.Boundary != "" {
		opts = append(opts, WithBoundaryName(s.Boundary))
	}
	if s.Coupling != "" {
		opts = append(opts, WithCouplingName(s.Coupling))
	}
	if s.DT != 0 {
		opts = append(opts, WithTimeStep(s.DT))
	}
	if s.TEnd != nil {
		opts = append(opts, WithDuration(*s.TEnd))
	}

	nl, err := s.nonlinearity()
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	opts = append(opts, WithNonlinearity(nl))

	t, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	return t, nil
}

func (s Spec) nonlinearity() (Nonlinearity, error) {
	switch strings.ToLower(strings.TrimSpace(s.Nonlinearity)) {
	case NamePWConst:
		return PiecewiseConstant(s.Points)
	case NamePWLinear:
		return PiecewiseLinear(s.Points)
	default:
		return ParseNonlinearity(s.Nonlinearity)
	}
}

// SpecOf converts a template back into its serialisable form. Kernels are
// always written as full 9-value lists.
func SpecOf(t *Template) Spec {
	a, b, d := t.A(), t.B(), t.D()
	tEnd := t.Duration()
	s := Spec{
		Z:        t.Z(),
		Boundary: t.Boundary().String(),
		Coupling: t.Coupling().String(),
		DT:       t.TimeStep(),
		TEnd:     &tEnd,
	}
	if !a.IsZero() {
		s.A = a[:]
	}
	if !b.IsZero() {
		s.B = b[:]
	}
	if !d.IsZero() {
		s.D = d[:]
	}
	if nl := t.Nonlinearity(); nl.Kind() != Standard {
		s.Nonlinearity = nl.Name()
		s.Points = nl.Points()
	}

	return s
}

// Library is a named collection of templates.
type Library struct {
	templates map[string]*Template
}

// NewLibrary returns a library pre-populated with the builtin templates.
func NewLibrary() *Library {
	lib := &Library{templates: make(map[string]*Template, len(builtinOptions))}
	for _, name := range BuiltinNames() {
		t, err := Builtin(name)
		if err != nil {
			panic(err) // builtin coefficients are static
		}
		lib.templates[name] = t
	}

	return lib
}

// LoadLibrary reads templates from YAML and adds them to the builtin set.
// File entries override builtins of the same (upper-cased) name.
func LoadLibrary(r io.Reader) (*Library, error) {
	var f libraryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("template: decode library: %w", err)
	}

	lib := NewLibrary()
	for name, spec := range f.Templates {
		key := strings.ToUpper(strings.TrimSpace(name))
		t, err := spec.Build(key)
		if err != nil {
			return nil, err
		}
		lib.templates[key] = t
	}

	return lib, nil
}

// LoadLibraryFile is LoadLibrary over a file. An empty path yields the
// builtin library.
func LoadLibraryFile(path string) (*Library, error) {
	if path == "" {
		return NewLibrary(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template: open library: %w", err)
	}
	defer f.Close()

	return LoadLibrary(f)
}

// Get looks a template up by case-insensitive name.
func (l *Library) Get(name string) (*Template, error) {
	t, ok := l.templates[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("template: %q: %w", name, ErrUnknownTemplate)
	}

	return t, nil
}

// Add registers t under its name (upper-cased), replacing any previous entry.
func (l *Library) Add(t *Template) {
	l.templates[strings.ToUpper(t.Name())] = t
}

// Names returns the registered names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for n := range l.templates {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// WriteTo encodes the whole library as YAML.
func (l *Library) WriteTo(w io.Writer) (int64, error) {
	f := libraryFile{Templates: make(map[string]Spec, len(l.templates))}
	for n, t := range l.templates {
		f.Templates[n] = SpecOf(t)
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("template: encode library: %w", err)
	}
	n, err := w.Write(out)

	return int64(n), err
}
