// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

import (
	"slices"

	"github.com/db47h/circsim/geom"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// groupLines groups wire segments into electrically connected sets. Two
// segments are connected if an end of one lies on the other. Groups are
// returned in order of their first segment, segments in input order.
//
func groupLines(lines []geom.Line) [][]geom.Line {
	if len(lines) == 0 {
		return nil
	}
	g := simple.NewUndirectedGraph()
	for i := range lines {
		g.AddNode(simple.Node(i))
	}
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			if lines[i].Touches(lines[j]) {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	cc := topo.ConnectedComponents(g)
	ids := make([][]int, len(cc))
	for i, nodes := range cc {
		ids[i] = nodeIDs(nodes)
	}
	slices.SortFunc(ids, func(a, b []int) int { return a[0] - b[0] })
	groups := make([][]geom.Line, len(ids))
	for i, set := range ids {
		for _, id := range set {
			groups[i] = append(groups[i], lines[id])
		}
	}
	return groups
}

func nodeIDs(nodes []graph.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = int(n.ID())
	}
	slices.Sort(ids)
	return ids
}

// onLines returns the index of the first group with a segment containing p, or
// -1.
//
func onLines(groups [][]geom.Line, p geom.Point) int {
	for i, g := range groups {
		for _, l := range g {
			if l.Contains(p) {
				return i
			}
		}
	}
	return -1
}

// isolatedPorts collects ports that do not touch any wire, by location, in
// order of first appearance.
//
type isolatedPorts struct {
	order []geom.Point
	ports map[geom.Point][]*Port
}

func (ip *isolatedPorts) add(at geom.Point, p *Port) {
	if ip.ports == nil {
		ip.ports = make(map[geom.Point][]*Port)
	}
	if _, ok := ip.ports[at]; !ok {
		ip.order = append(ip.order, at)
	}
	ip.ports[at] = append(ip.ports[at], p)
}

// wireUp builds the networks of c from its wire segments and component port
// locations.
//
func (c *Circuit) wireUp() error {
	groups := groupLines(c.schem.Wires)
	for _, g := range groups {
		c.nets = append(c.nets, &Network{arena: &c.arena, lines: g})
	}
	var iso isolatedPorts
	for _, comp := range c.comps {
		for _, p := range comp.Ports() {
			at := portLocation(comp, p)
			if i := onLines(groups, at); i >= 0 {
				if err := c.nets[i].solder(p); err != nil {
					return err
				}
				continue
			}
			iso.add(at, p)
		}
	}
	for _, at := range iso.order {
		ps := iso.ports[at]
		if len(ps) < 2 {
			continue
		}
		n := &Network{arena: &c.arena}
		for _, p := range ps {
			if err := n.solder(p); err != nil {
				return err
			}
		}
		c.nets = append(c.nets, n)
	}
	return nil
}
