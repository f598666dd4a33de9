package search

import "github.com/gridwerk/flowsearch/internal/domain"

// catalogIndex holds the six inverted indices derived from a catalog
// snapshot. Built once per searcher generation, read-only afterwards.
//
// Name and description posting lists keep one entry per token occurrence:
// a repeated token inflates that flow's fulltext weight. The value indices
// (system, format, method, interface) are per-flow; the system index is
// de-duplicated so a self-transfer (source == target) posts once.
type catalogIndex struct {
	name        map[string][]string
	description map[string][]string
	system      map[string][]string
	format      map[string][]string
	method      map[string][]string
	iface       map[string][]string

	// nameVocab is every distinct name token in first-occurrence order,
	// the vocabulary the fuzzy-term pass scans.
	nameVocab []string

	// pos maps flow IDs to catalog positions for ordered lookups.
	pos   map[string]int
	flows []domain.Flow
}

func buildIndex(catalog domain.Catalog) *catalogIndex {
	idx := &catalogIndex{
		name:        map[string][]string{},
		description: map[string][]string{},
		system:      map[string][]string{},
		format:      map[string][]string{},
		method:      map[string][]string{},
		iface:       map[string][]string{},
		pos:         make(map[string]int, len(catalog.Flows)),
		flows:       catalog.Flows,
	}

	for i, flow := range catalog.Flows {
		idx.pos[flow.ID] = i

		for _, token := range Tokenize(flow.Name) {
			if _, known := idx.name[token]; !known {
				idx.nameVocab = append(idx.nameVocab, token)
			}
			idx.name[token] = append(idx.name[token], flow.ID)
		}
		for _, token := range Tokenize(flow.Description) {
			idx.description[token] = append(idx.description[token], flow.ID)
		}

		if flow.SourceSystem != "" {
			idx.system[flow.SourceSystem] = append(idx.system[flow.SourceSystem], flow.ID)
		}
		if flow.TargetSystem != "" && flow.TargetSystem != flow.SourceSystem {
			idx.system[flow.TargetSystem] = append(idx.system[flow.TargetSystem], flow.ID)
		}

		if flow.Format != "" {
			idx.format[flow.Format] = append(idx.format[flow.Format], flow.ID)
		}
		for _, method := range flow.TransmissionMethods() {
			idx.method[method] = append(idx.method[method], flow.ID)
		}
		for _, step := range flow.ProcessSteps {
			if step.Interface != "" {
				idx.iface[step.Interface] = append(idx.iface[step.Interface], flow.ID)
			}
		}
	}

	return idx
}

// flowByID returns the indexed flow for an ID produced by this index.
func (idx *catalogIndex) flowByID(id string) domain.Flow {
	return idx.flows[idx.pos[id]]
}
