package network

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Cycles returns the loops of the graph: groups of nodes that can each reach
// all the others by following child edges. Each loop lists its nodes in
// Nodes() order, and loops are ordered by their first node.
func (n *Network) Cycles() [][]NodeID {
	rank := make(map[NodeID]int, len(n.order))
	g := simple.NewDirectedGraph()
	for i, id := range n.order {
		rank[id] = i
		g.AddNode(simple.Node(id))
	}
	for _, id := range n.order {
		for _, c := range n.nodes[id].children {
			// simple graphs reject self edges; hasSelfEdge covers them below.
			if c != id {
				g.SetEdge(g.NewEdge(simple.Node(id), simple.Node(c)))
			}
		}
	}

	var loops [][]NodeID
	for _, component := range topo.TarjanSCC(g) {
		if len(component) == 1 && !n.hasSelfEdge(NodeID(component[0].ID())) {
			continue
		}
		loop := make([]NodeID, len(component))
		for i, node := range component {
			loop[i] = NodeID(node.ID())
		}
		sort.Slice(loop, func(i, j int) bool { return rank[loop[i]] < rank[loop[j]] })
		loops = append(loops, loop)
	}

	sort.Slice(loops, func(i, j int) bool { return rank[loops[i][0]] < rank[loops[j][0]] })
	return loops
}

func (n *Network) hasSelfEdge(id NodeID) bool {
	for _, c := range n.nodes[id].children {
		if c == id {
			return true
		}
	}
	return false
}
