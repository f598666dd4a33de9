package domain

// Direction is the recognized transfer direction of a query.
type Direction string

// Direction values, in recognition priority order.
const (
	DirectionFrom    Direction = "from"
	DirectionTo      Direction = "to"
	DirectionBetween Direction = "between"
	DirectionNone    Direction = ""
)

// QueryEntities holds the catalog values recognized inside one query.
// Per-query and transient; never outlives the search call.
type QueryEntities struct {
	Systems             []string  `json:"systems"`
	Formats             []string  `json:"formats"`
	TransmissionMethods []string  `json:"transmission_methods"`
	Interfaces          []string  `json:"interfaces"`
	UnknownTerms        []string  `json:"unknown_terms"`
	Direction           Direction `json:"direction,omitempty"`
}

// Empty reports whether nothing at all was recognized (direction excluded;
// a bare direction word carries no entity).
func (e QueryEntities) Empty() bool {
	return len(e.Systems) == 0 && len(e.Formats) == 0 &&
		len(e.TransmissionMethods) == 0 && len(e.Interfaces) == 0
}

// ScoredFlow is a flow annotated with its search score, rounded to two
// decimals for presentation.
type ScoredFlow struct {
	Flow
	SearchScore float64 `json:"search_score"`
}

// SearchResult is the complete answer to one query.
type SearchResult struct {
	DirectResults   []ScoredFlow  `json:"direct_results"`
	RelatedFlows    []Flow        `json:"related_flows"`
	MatchingSystems []string      `json:"matching_systems"`
	QueryEntities   QueryEntities `json:"query_entities"`
	NaturalResponse string        `json:"natural_response"`
}
