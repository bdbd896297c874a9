package network

import "github.com/specialistvlad/factoryflow/internal/catalog"

// MaterialsOutput returns the best known output of a node. Assembly nodes
// output their recipe results. A resolved transport node outputs its
// purpose; an unresolved one outputs whatever its parents output, merged by
// item name. A parent chain that loops back on itself contributes nothing
// for the repeated part.
func (n *Network) MaterialsOutput(id NodeID) []catalog.Item {
	return n.materialsOutput(id, make(map[NodeID]bool))
}

func (n *Network) materialsOutput(id NodeID, visited map[NodeID]bool) []catalog.Item {
	node := n.Node(id)
	if node == nil {
		return nil
	}

	switch node.Kind {
	case AssemblyNode:
		return node.Outputs()
	case TransportNode:
		if node.purpose.resolved {
			return node.purpose.Items()
		}
		if visited[id] {
			return nil
		}
		visited[id] = true

		var out []catalog.Item
		for _, p := range node.parents {
			for _, it := range n.materialsOutput(p, visited) {
				if !containsItem(out, it) {
					out = append(out, it)
				}
			}
		}
		return out
	}
	return nil
}

func containsItem(items []catalog.Item, it catalog.Item) bool {
	for _, other := range items {
		if other.Same(it) {
			return true
		}
	}
	return false
}
