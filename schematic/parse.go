// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package schematic

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/db47h/circsim/geom"
	"github.com/pkg/errors"
)

type xmlAttr struct {
	Name string `xml:"name,attr"`
	Val  string `xml:"val,attr"`
}

type xmlLib struct {
	Name string `xml:"name,attr"`
	Desc string `xml:"desc,attr"`
}

type xmlWire struct {
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
}

type xmlComp struct {
	Lib   *string   `xml:"lib,attr"`
	Loc   string    `xml:"loc,attr"`
	Name  string    `xml:"name,attr"`
	Attrs []xmlAttr `xml:"a"`
}

type xmlCircuit struct {
	Name  string    `xml:"name,attr"`
	Attrs []xmlAttr `xml:"a"`
	Wires []xmlWire `xml:"wire"`
	Comps []xmlComp `xml:"comp"`
}

type xmlProject struct {
	XMLName  xml.Name     `xml:"project"`
	Source   string       `xml:"source,attr"`
	Version  string       `xml:"version,attr"`
	Libs     []xmlLib     `xml:"lib"`
	Main     *xmlLib      `xml:"main"`
	Circuits []xmlCircuit `xml:"circuit"`
}

func attributes(xs []xmlAttr) Attributes {
	a := make(Attributes, len(xs))
	for _, x := range xs {
		a[x.Name] = x.Val
	}
	return a
}

// Parse reads a Logisim project from r.
//
func Parse(r io.Reader) (*Project, error) {
	var x xmlProject
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, errors.Wrap(err, "decode project")
	}
	p := &Project{
		Source:  x.Source,
		Version: x.Version,
	}
	for _, l := range x.Libs {
		path, ext := ParseLibraryDesc(l.Desc)
		p.Libraries = append(p.Libraries, Library{ID: l.Name, Desc: l.Desc, Path: path, External: ext})
	}
	for i := range x.Circuits {
		c, err := parseCircuit(&x.Circuits[i])
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %q", x.Circuits[i].Name)
		}
		p.Circuits = append(p.Circuits, *c)
	}
	if x.Main != nil {
		p.Main = x.Main.Name
	} else if len(p.Circuits) > 0 {
		p.Main = p.Circuits[0].Name
	}
	return p, nil
}

// ParseFile reads the Logisim project file name.
//
func ParseFile(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

func parseCircuit(x *xmlCircuit) (*Circuit, error) {
	c := &Circuit{Name: x.Name}
	c.Label = attributes(x.Attrs).String("clabel", "")
	for _, w := range x.Wires {
		from, err := geom.ParsePoint(w.From)
		if err != nil {
			return nil, errors.Wrap(err, "wire")
		}
		to, err := geom.ParsePoint(w.To)
		if err != nil {
			return nil, errors.Wrap(err, "wire")
		}
		l, err := geom.NewLine(to, from)
		if err != nil {
			return nil, err
		}
		c.Wires = append(c.Wires, l)
	}
	for _, xc := range x.Comps {
		loc, err := geom.ParsePoint(xc.Loc)
		if err != nil {
			return nil, errors.Wrapf(err, "component %q", xc.Name)
		}
		comp := Component{
			Name:       xc.Name,
			Location:   loc,
			Attributes: attributes(xc.Attrs),
		}
		if xc.Lib != nil {
			comp.Lib = *xc.Lib
		}
		c.Components = append(c.Components, comp)
	}
	return c, nil
}
