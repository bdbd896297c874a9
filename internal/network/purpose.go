package network

import (
	"context"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
)

// CalculateBottleneck seeds purposes from every assembly node, in Nodes()
// order, and lets them spread through the transport nodes. When a machine
// has several ingredients, the outcome can depend on which machines ran
// before it.
func (n *Network) CalculateBottleneck(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Propagation: Starting.", "node_count", n.Len())

	machines := 0
	for _, id := range n.order {
		if node := n.nodes[id]; node.Kind == AssemblyNode {
			n.calculatePurpose(ctx, node)
			machines++
		}
	}

	resolved := 0
	for _, id := range n.order {
		if n.nodes[id].purpose.resolved {
			resolved++
		}
	}
	logger.Debug("Propagation: Complete.", "machines", machines, "resolved_transport_nodes", resolved)
}

// calculatePurpose tells a machine's parents what to bring and its
// children what to take away.
func (n *Network) calculatePurpose(ctx context.Context, node *Node) {
	if node.Entity.Recipe == nil {
		return
	}
	ctxlog.FromContext(ctx).Debug("Propagation: Calculating machine purpose.", "node", node.String())

	if len(node.inputs) == 1 {
		for _, p := range node.parents {
			n.SetPurpose(ctx, p, node.inputs, node.ID)
		}
	} else {
		// Parents with a known output already cover the matching
		// ingredients. Every other parent is handed all that remains.
		outputs := make([][]catalog.Item, len(node.parents))
		provided := make(map[string]bool)
		for i, p := range node.parents {
			outputs[i] = n.MaterialsOutput(p)
			for _, it := range outputs[i] {
				provided[it.Name] = true
			}
		}

		var needed []catalog.Item
		for _, in := range node.inputs {
			if !provided[in.Name] {
				needed = append(needed, in)
			}
		}

		for i, p := range node.parents {
			if len(outputs[i]) == 0 {
				n.SetPurpose(ctx, p, needed, node.ID)
			}
		}
	}

	for _, c := range node.children {
		n.SetPurpose(ctx, c, node.outputs, node.ID)
	}
}

// SetPurpose resolves a transport node to items and forwards them to all
// its neighbours except from. A node keeps the first purpose it receives;
// later calls are logged and ignored. Assembly nodes ignore purposes.
func (n *Network) SetPurpose(ctx context.Context, id NodeID, items []catalog.Item, from NodeID) {
	node := n.Node(id)
	if node == nil || node.Kind != TransportNode {
		return
	}

	if !node.resolve(items) {
		logger := ctxlog.FromContext(ctx)
		if sameItems(node.purpose.items, items) {
			logger.Debug("Propagation: Node already carries this purpose.", "node_id", id)
		} else {
			logger.Warn("Purpose conflict, keeping the first assignment.",
				"entity_number", node.Entity.Number, "entity", node.Entity.Name,
				"kept", joinItems(node.purpose.items), "rejected", joinItems(items))
		}
		return
	}

	for _, p := range node.parents {
		if p != from {
			n.SetPurpose(ctx, p, items, id)
		}
	}
	for _, c := range node.children {
		if c != from {
			n.SetPurpose(ctx, c, items, id)
		}
	}
}

func sameItems(a, b []catalog.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Same(b[i]) {
			return false
		}
	}
	return true
}
