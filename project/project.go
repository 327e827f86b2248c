// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package project loads Logisim projects: it resolves the libraries a project
// references, built-in or external, and compiles its circuits.
//
// Circuits of a project can be used as components in each other. They are
// registered under the library id "". External projects are loaded
// recursively and their circuits are exposed under the id of the library
// that references them.
//
package project

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/db47h/circsim"
	"github.com/db47h/circsim/circlib"
	"github.com/db47h/circsim/schematic"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrRecursive is returned when circuits or project files reference each other
// in a loop.
//
var ErrRecursive = errors.New("recursive reference")

// An Option configures project loading.
//
type Option func(*loader)

// Resolver sets a function used to locate external libraries that cannot be
// found relative to the file that references them. fn receives the library
// path as written in the project file.
//
func Resolver(fn func(path string) (string, error)) Option {
	return func(l *loader) { l.resolve = fn }
}

// CircuitOptions sets the options used for every circuit and sub-circuit
// instance.
//
func CircuitOptions(opts ...circsim.Option) Option {
	return func(l *loader) { l.opts = append(l.opts, opts...) }
}

// Project is a loaded project.
//
type Project struct {
	Path      string
	Schematic *schematic.Project
	Libraries circsim.Libraries
	Imports   []*Project // external projects, in library order

	circuits []*circsim.Circuit
}

// Circuits returns the compiled circuits in file order.
//
func (p *Project) Circuits() []*circsim.Circuit { return p.circuits }

// Circuit returns the circuit with the given name, or nil.
//
func (p *Project) Circuit(name string) *circsim.Circuit {
	for _, c := range p.circuits {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Main returns the main circuit of the project.
//
func (p *Project) Main() *circsim.Circuit { return p.Circuit(p.Schematic.Main) }

type loader struct {
	resolve func(string) (string, error)
	opts    []circsim.Option
	loaded  map[string]*Project
	loading []string
}

// Load loads and compiles the project file at path and all the external
// libraries it references.
//
func Load(path string, opts ...Option) (*Project, error) {
	l := newLoader(opts)
	return l.load(path)
}

// New compiles an already parsed project. dir is the directory against which
// external library paths are resolved.
//
func New(sp *schematic.Project, dir string, opts ...Option) (*Project, error) {
	l := newLoader(opts)
	return l.build(sp, dir)
}

func newLoader(opts []Option) *loader {
	l := &loader{loaded: make(map[string]*Project)}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *loader) load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if p, ok := l.loaded[abs]; ok {
		return p, nil
	}
	if slices.Contains(l.loading, abs) {
		return nil, errors.Wrapf(ErrRecursive, "%s", strings.Join(append(l.loading, abs), " -> "))
	}
	l.loading = append(l.loading, abs)
	defer func() { l.loading = l.loading[:len(l.loading)-1] }()

	sp, err := schematic.ParseFile(abs)
	if err != nil {
		return nil, err
	}
	p, err := l.build(sp, filepath.Dir(abs))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	p.Path = abs
	l.loaded[abs] = p
	return p, nil
}

func (l *loader) locate(dir, path string) (string, error) {
	full := filepath.Join(dir, filepath.FromSlash(path))
	if _, err := os.Stat(full); err == nil || l.resolve == nil {
		return full, nil
	}
	return l.resolve(path)
}

func (l *loader) build(sp *schematic.Project, dir string) (*Project, error) {
	p := &Project{Schematic: sp, Libraries: make(circsim.Libraries, len(sp.Libraries)+1)}
	for _, lib := range sp.Libraries {
		if !lib.External {
			b, ok := circlib.Builtin(lib.Path)
			if !ok {
				return nil, errors.Wrapf(circsim.ErrMissingLibrary, "built-in library %q", lib.Desc)
			}
			p.Libraries[lib.ID] = b
			continue
		}
		path, err := l.locate(dir, lib.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "library %q", lib.Desc)
		}
		sub, err := l.load(path)
		if err != nil {
			return nil, err
		}
		p.Libraries[lib.ID] = sub.Libraries[""]
		p.Imports = append(p.Imports, sub)
	}

	own := make(circsim.Library, len(sp.Circuits))
	for i := range sp.Circuits {
		sc := &sp.Circuits[i]
		own[sc.Name] = circsim.SubcircuitFactory(sc, p.Libraries, l.opts...)
	}
	p.Libraries[""] = own

	order, err := compileOrder(sp.Circuits)
	if err != nil {
		return nil, err
	}
	p.circuits = make([]*circsim.Circuit, len(sp.Circuits))
	for _, i := range order {
		c := circsim.New(&sp.Circuits[i], l.opts...)
		if err = c.Compile(p.Libraries); err != nil {
			return nil, err
		}
		p.circuits[i] = c
	}

	log.WithFields(log.Fields{
		"dir":       dir,
		"circuits":  len(sp.Circuits),
		"libraries": len(sp.Libraries),
		"main":      sp.Main,
	}).Debug("project loaded")
	return p, nil
}

// compileOrder returns the indices of circuits so that every circuit comes
// after the circuits it instantiates.
//
func compileOrder(cs []schematic.Circuit) ([]int, error) {
	idx := make(map[string]int, len(cs))
	g := simple.NewDirectedGraph()
	for i := range cs {
		idx[cs[i].Name] = i
		g.AddNode(simple.Node(i))
	}
	for i := range cs {
		for _, d := range cs[i].Components {
			if d.Lib != "" {
				continue
			}
			j, ok := idx[d.Name]
			if !ok {
				// reported by Compile
				continue
			}
			if i == j {
				return nil, errors.Wrapf(ErrRecursive, "circuit %q contains itself", cs[i].Name)
			}
			if !g.HasEdgeFromTo(int64(j), int64(i)) {
				g.SetEdge(g.NewEdge(simple.Node(j), simple.Node(i)))
			}
		}
	}
	sorted, err := topo.SortStabilized(g, byID)
	if err != nil {
		var names []string
		if u, ok := err.(topo.Unorderable); ok {
			for _, set := range u {
				for _, n := range set {
					names = append(names, cs[n.ID()].Name)
				}
			}
		}
		slices.Sort(names)
		return nil, errors.Wrapf(ErrRecursive, "circuits %s", strings.Join(names, ", "))
	}
	order := make([]int, len(sorted))
	for i, n := range sorted {
		order[i] = int(n.ID())
	}
	return order, nil
}

func byID(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) int { return int(a.ID() - b.ID()) })
}
