package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrMissingFlowItem is returned when a flow is recorded without an item.
	ErrMissingFlowItem = errors.New("flow added without item")
	// ErrMissingFlowAmount is returned when a flow is recorded without a
	// positive amount.
	ErrMissingFlowAmount = errors.New("flow added without amount")
)

// Flow sums amounts per item name.
type Flow struct {
	Items map[string]float64 `yaml:"items" json:"items"`
}

// NewFlow returns an empty flow.
func NewFlow() *Flow {
	return &Flow{Items: make(map[string]float64)}
}

// Add records amount of item.
func (f *Flow) Add(item string, amount float64) error {
	if item == "" {
		return ErrMissingFlowItem
	}
	if math.IsNaN(amount) || amount <= 0 {
		return fmt.Errorf("%w: %s has amount %g", ErrMissingFlowAmount, item, amount)
	}
	if f.Items == nil {
		f.Items = make(map[string]float64)
	}
	f.Items[item] += amount
	return nil
}

// Total is the sum of all recorded amounts.
func (f *Flow) Total() float64 {
	var total float64
	for _, v := range f.Items {
		total += v
	}
	return total
}

func (f *Flow) String() string {
	names := make([]string, 0, len(f.Items))
	for name := range f.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %g", name, f.Items[name])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
