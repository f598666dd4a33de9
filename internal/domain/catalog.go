package domain

import (
	"fmt"
	"sort"
)

// Catalog is the immutable snapshot a searcher is built from: the ordered
// flow list plus the derived vocabulary sets. A refresh never mutates a
// Catalog in place; it builds a new one.
type Catalog struct {
	Flows               []Flow
	Systems             []string
	Formats             []string
	TransmissionMethods []string
	Interfaces          []string
}

// NewCatalog builds a Catalog from the given flows, deriving the vocabulary
// sets (sorted, de-duplicated) from the flow fields.
func NewCatalog(flows []Flow) Catalog {
	systems := map[string]struct{}{}
	formats := map[string]struct{}{}
	methods := map[string]struct{}{}
	interfaces := map[string]struct{}{}

	for _, f := range flows {
		if f.SourceSystem != "" {
			systems[f.SourceSystem] = struct{}{}
		}
		if f.TargetSystem != "" {
			systems[f.TargetSystem] = struct{}{}
		}
		if f.Format != "" {
			formats[f.Format] = struct{}{}
		}
		for _, m := range f.TransmissionMethods() {
			methods[m] = struct{}{}
		}
		for _, step := range f.ProcessSteps {
			if step.Interface != "" {
				interfaces[step.Interface] = struct{}{}
			}
		}
	}

	return Catalog{
		Flows:               flows,
		Systems:             sortedKeys(systems),
		Formats:             sortedKeys(formats),
		TransmissionMethods: sortedKeys(methods),
		Interfaces:          sortedKeys(interfaces),
	}
}

// Validate checks the catalog for construction-time errors: flows without an
// ID and duplicate IDs. Empty optional fields are fine and simply do not
// contribute to any index.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Flows))
	for i, f := range c.Flows {
		if f.ID == "" {
			return fmt.Errorf("%w: flow at position %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: duplicate flow id %q", ErrInvalidCatalog, f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// FlowByID returns the flow with the given ID, or ErrFlowNotFound.
func (c Catalog) FlowByID(id string) (Flow, error) {
	for _, f := range c.Flows {
		if f.ID == id {
			return f, nil
		}
	}
	return Flow{}, fmt.Errorf("flow %q: %w", id, ErrFlowNotFound)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
