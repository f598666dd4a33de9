package search

import (
	"sort"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// maxRelatedFlows caps how many related flows a SearchResult carries. The
// full set is still counted for the natural-language response.
const maxRelatedFlows = 10

// matchingSystems collects the source and target systems referenced by the
// direct results, sorted.
func matchingSystems(direct []domain.ScoredFlow) []string {
	set := map[string]struct{}{}
	for _, r := range direct {
		if r.SourceSystem != "" {
			set[r.SourceSystem] = struct{}{}
		}
		if r.TargetSystem != "" {
			set[r.TargetSystem] = struct{}{}
		}
	}
	systems := make([]string, 0, len(set))
	for s := range set {
		systems = append(systems, s)
	}
	sort.Strings(systems)
	return systems
}

// relatedFlows returns every flow outside the direct results that touches
// one of the matching systems, in catalog order, with no secondary ranking.
func (s *Searcher) relatedFlows(direct []domain.ScoredFlow, systems []string) []domain.Flow {
	directIDs := make(map[string]struct{}, len(direct))
	for _, r := range direct {
		directIDs[r.ID] = struct{}{}
	}
	systemSet := make(map[string]struct{}, len(systems))
	for _, sys := range systems {
		systemSet[sys] = struct{}{}
	}

	var related []domain.Flow
	for _, flow := range s.catalog.Flows {
		if _, isDirect := directIDs[flow.ID]; isDirect {
			continue
		}
		_, srcHit := systemSet[flow.SourceSystem]
		_, tgtHit := systemSet[flow.TargetSystem]
		if (flow.SourceSystem != "" && srcHit) || (flow.TargetSystem != "" && tgtHit) {
			related = append(related, flow)
		}
	}
	return related
}
