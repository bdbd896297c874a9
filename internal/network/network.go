package network

// Network is the node graph of one layout. Its structure is fixed once Build
// returns; only transport node purposes change afterwards.
type Network struct {
	nodes    []*Node
	order    []NodeID
	lookup   [][]NodeID
	byNumber map[int]NodeID
}

// Nodes returns every distinct node, in the row-major order of the first
// cell each one occupies.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, len(n.order))
	for i, id := range n.order {
		out[i] = n.nodes[id]
	}
	return out
}

// Len returns the number of distinct nodes.
func (n *Network) Len() int { return len(n.order) }

// Node returns the node behind a handle, or nil for NoNode and foreign
// handles.
func (n *Network) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(n.nodes) {
		return nil
	}
	return n.nodes[id]
}

// NodeAt returns the handle of the node covering (x, y).
func (n *Network) NodeAt(x, y int) NodeID {
	if y < 0 || y >= len(n.lookup) || x < 0 || x >= len(n.lookup[y]) {
		return NoNode
	}
	return n.lookup[y][x]
}

// NodeFor returns the node built for an entity number.
func (n *Network) NodeFor(entityNumber int) (*Node, bool) {
	id, ok := n.byNumber[entityNumber]
	if !ok {
		return nil, false
	}
	return n.nodes[id], true
}

// Roots returns the nodes without parents, the sources of material flow.
func (n *Network) Roots() []*Node {
	var roots []*Node
	for _, id := range n.order {
		if len(n.nodes[id].parents) == 0 {
			roots = append(roots, n.nodes[id])
		}
	}
	return roots
}

// Leaves returns the nodes without children, the sinks of material flow.
func (n *Network) Leaves() []*Node {
	var leaves []*Node
	for _, id := range n.order {
		if len(n.nodes[id].children) == 0 {
			leaves = append(leaves, n.nodes[id])
		}
	}
	return leaves
}
