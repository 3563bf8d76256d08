package strategy

import (
	"fmt"
	"slices"
)

// Names of the built-in strategies, as exposed in API responses.
const (
	NameLumpSum    = "lump_sum"
	NameEqualStock = "equal_stock"
	NameDCA        = "dca"
)

// ReservedNames are response keys a strategy name must not shadow.
var ReservedNames = []string{"ticker", "timeseries", "summaries"}

// Registry is an ordered name -> Strategy mapping.
type Registry struct {
	names      []string
	strategies map[string]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// DefaultRegistry returns a registry with lump_sum, equal_stock and dca, in that order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NameLumpSum, LumpSum)
	_ = r.Register(NameEqualStock, EqualStock)
	_ = r.Register(NameDCA, DCA)
	return r
}

// Register adds a strategy under name. Names must be unique, non-empty and not reserved.
func (r *Registry) Register(name string, s Strategy) error {
	if name == "" || s == nil {
		return fmt.Errorf("strategy: empty name or nil strategy")
	}
	if slices.Contains(ReservedNames, name) {
		return fmt.Errorf("strategy: %q is a reserved name", name)
	}
	if _, ok := r.strategies[name]; ok {
		return fmt.Errorf("strategy: %q already registered", name)
	}
	r.names = append(r.names, name)
	r.strategies[name] = s
	return nil
}

// Get returns the strategy registered under name.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Each calls fn for every strategy in registration order and stops at the first error.
func (r *Registry) Each(fn func(name string, s Strategy) error) error {
	for _, name := range r.names {
		if err := fn(name, r.strategies[name]); err != nil {
			return err
		}
	}
	return nil
}
