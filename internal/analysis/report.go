package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
	"github.com/specialistvlad/factoryflow/internal/entity"
	"github.com/specialistvlad/factoryflow/internal/network"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is written.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// NodeSummary describes one node for reporters.
type NodeSummary struct {
	EntityNumber int             `yaml:"entity_number" json:"entity_number"`
	Name         string          `yaml:"name" json:"name"`
	Kind         string          `yaml:"kind" json:"kind"`
	Position     entity.Position `yaml:"position" json:"position"`
	Recipe       string          `yaml:"recipe,omitempty" json:"recipe,omitempty"`
	Materials    []catalog.Item  `yaml:"materials,omitempty" json:"materials,omitempty"`
}

// Report is the outcome of analysing one network after propagation.
type Report struct {
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Nodes    int    `yaml:"nodes" json:"nodes"`
	Machines int    `yaml:"machines" json:"machines"`

	Roots  []NodeSummary `yaml:"roots" json:"roots"`
	Leaves []NodeSummary `yaml:"leaves" json:"leaves"`

	// Assignments are the transport nodes with a resolved purpose.
	Assignments []NodeSummary `yaml:"assignments" json:"assignments"`
	// Unresolved are the transport nodes no purpose reached.
	Unresolved []NodeSummary `yaml:"unresolved" json:"unresolved"`
	// Loops lists the entity numbers of each belt loop.
	Loops [][]int `yaml:"loops,omitempty" json:"loops,omitempty"`

	// Consumed and Produced sum recipe ingredients and results over every
	// machine with a recipe, per craft.
	Consumed *Flow `yaml:"consumed" json:"consumed"`
	Produced *Flow `yaml:"produced" json:"produced"`
}

// Analyse summarises a network. It fails when a machine's recipe carries an
// item without a name or a positive amount.
func Analyse(ctx context.Context, nw *network.Network) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	r := &Report{
		Nodes:       nw.Len(),
		Roots:       []NodeSummary{},
		Leaves:      []NodeSummary{},
		Assignments: []NodeSummary{},
		Unresolved:  []NodeSummary{},
		Consumed:    NewFlow(),
		Produced:    NewFlow(),
	}

	for _, n := range nw.Nodes() {
		switch n.Kind {
		case network.AssemblyNode:
			if n.Entity.Recipe == nil {
				continue
			}
			r.Machines++
			for _, it := range n.Inputs() {
				if err := r.Consumed.Add(it.Name, it.Amount); err != nil {
					return nil, fmt.Errorf("machine %d recipe %q: %w", n.Entity.Number, n.Entity.Recipe.Name, err)
				}
			}
			for _, it := range n.Outputs() {
				if err := r.Produced.Add(it.Name, it.Amount); err != nil {
					return nil, fmt.Errorf("machine %d recipe %q: %w", n.Entity.Number, n.Entity.Recipe.Name, err)
				}
			}
		case network.TransportNode:
			if n.Purpose().IsResolved() {
				r.Assignments = append(r.Assignments, summarise(nw, n))
			} else {
				r.Unresolved = append(r.Unresolved, summarise(nw, n))
			}
		}
	}

	for _, n := range nw.Roots() {
		r.Roots = append(r.Roots, summarise(nw, n))
	}
	for _, n := range nw.Leaves() {
		r.Leaves = append(r.Leaves, summarise(nw, n))
	}
	for _, loop := range nw.Cycles() {
		numbers := make([]int, len(loop))
		for i, id := range loop {
			numbers[i] = nw.Node(id).Entity.Number
		}
		r.Loops = append(r.Loops, numbers)
	}

	logger.Debug("Analysis complete.",
		"nodes", r.Nodes, "machines", r.Machines,
		"assigned", len(r.Assignments), "unresolved", len(r.Unresolved), "loops", len(r.Loops))
	return r, nil
}

func summarise(nw *network.Network, n *network.Node) NodeSummary {
	s := NodeSummary{
		EntityNumber: n.Entity.Number,
		Name:         n.Entity.Name,
		Kind:         n.Entity.Kind.String(),
		Position:     n.Entity.Position,
		Materials:    nw.MaterialsOutput(n.ID),
	}
	if n.Entity.Recipe != nil {
		s.Recipe = n.Entity.Recipe.Name
	}
	return s
}

// Encode writes the report in the given format.
func (r *Report) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown report format %q", format)
}
