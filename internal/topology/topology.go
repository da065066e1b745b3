// Package topology answers reachability questions over the diagram:
// which component instances are joined, directly or indirectly, by cables.
// Connections are purely topological; nothing electrical is simulated.
package topology

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
)

// buildGraph maps instances onto graph nodes and wires onto edges.
// Returns the graph plus the id mappings in insertion order.
func buildGraph(d *diagram.Diagram) (*simple.UndirectedGraph, map[string]int64, []string) {
	g := simple.NewUndirectedGraph()
	idToNode := make(map[string]int64)
	var order []string

	for i, inst := range d.Components() {
		nid := int64(i)
		idToNode[inst.ID] = nid
		order = append(order, inst.ID)
		g.AddNode(simple.Node(nid))
	}

	for _, w := range d.Wires() {
		a, okA := idToNode[w.Start.ComponentID]
		b, okB := idToNode[w.End.ComponentID]
		if !okA || !okB || a == b {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}

	return g, idToNode, order
}

// Groups partitions the diagram into connected groups of component ids.
// Isolated instances form singleton groups. Ids within a group, and the
// groups themselves, are ordered by component insertion order.
func Groups(d *diagram.Diagram) [][]string {
	g, _, order := buildGraph(d)
	if len(order) == 0 {
		return nil
	}

	components := topo.ConnectedComponents(g)

	groups := make([][]string, 0, len(components))
	for _, nodes := range components {
		group := make([]string, 0, len(nodes))
		for _, n := range nodes {
			group = append(group, order[n.ID()])
		}
		sort.Slice(group, func(i, j int) bool {
			return indexOf(order, group[i]) < indexOf(order, group[j])
		})
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return indexOf(order, groups[i][0]) < indexOf(order, groups[j][0])
	})
	return groups
}

// ConnectedTo returns every instance id reachable from the given instance
// through cables, excluding the instance itself. Returns nil for an
// unknown id.
func ConnectedTo(d *diagram.Diagram, id string) []string {
	if d.Component(id) == nil {
		return nil
	}
	for _, group := range Groups(d) {
		for _, member := range group {
			if member != id {
				continue
			}
			out := make([]string, 0, len(group)-1)
			for _, m := range group {
				if m != id {
					out = append(out, m)
				}
			}
			return out
		}
	}
	return nil
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return len(order)
}
