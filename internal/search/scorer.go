package search

import (
	"unicode/utf8"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// Score weights of the four additive passes. Order of passes does not
// change the result; every contribution is non-negative.
const (
	scoreSystemBothRoles  = 3.0
	scoreSystemDirected   = 2.0
	scoreSystemAnyRole    = 1.0
	scoreFormat           = 2.0
	scoreMethod           = 1.5
	scoreInterface        = 2.5
	scoreNameToken        = 1.0
	scoreDescriptionToken = 0.7
	scoreDirectionalMatch = 5.0

	fuzzyCandidateLimit = 5
)

// scoreMap accumulates per-flow scores for one query. Reset every query,
// monotonically built, never reused.
type scoreMap map[string]float64

// scoreEntities is the entity pass: recognized systems, formats, methods
// and interfaces credit every flow they index, with direction-aware system
// weighting.
func (s *Searcher) scoreEntities(entities domain.QueryEntities, scores scoreMap) {
	for _, system := range entities.Systems {
		for _, id := range s.index.system[system] {
			flow := s.index.flowByID(id)
			switch {
			case flow.SourceSystem == system && flow.TargetSystem == system:
				scores[id] += scoreSystemBothRoles
			case entities.Direction == domain.DirectionFrom && flow.SourceSystem == system:
				scores[id] += scoreSystemDirected
			case entities.Direction == domain.DirectionTo && flow.TargetSystem == system:
				scores[id] += scoreSystemDirected
			case entities.Direction == domain.DirectionBetween:
				scores[id] += scoreSystemAnyRole
			default:
				scores[id] += scoreSystemAnyRole
			}
		}
	}

	for _, format := range entities.Formats {
		for _, id := range s.index.format[format] {
			scores[id] += scoreFormat
		}
	}
	for _, method := range entities.TransmissionMethods {
		for _, id := range s.index.method[method] {
			scores[id] += scoreMethod
		}
	}
	for _, iface := range entities.Interfaces {
		for _, id := range s.index.iface[iface] {
			scores[id] += scoreInterface
		}
	}
}

// scoreFuzzyTerms is the fuzzy-term pass: every term of length >= 3 is
// compared against the name-token vocabulary; the best five candidates
// clearing the threshold credit every flow whose name produced them,
// weighted by similarity/100.
func (s *Searcher) scoreFuzzyTerms(terms []string, scores scoreMap) {
	if len(terms) == 0 {
		return
	}

	vocabulary := s.index.nameVocab
	if s.fuzzyVocabLimit > 0 && len(vocabulary) > s.fuzzyVocabLimit {
		vocabulary = vocabulary[:s.fuzzyVocabLimit]
	}

	for _, term := range terms {
		if utf8.RuneCountInString(term) < 3 {
			continue
		}
		for _, c := range s.fuzzy.bestCandidates(term, vocabulary, fuzzyCandidateLimit) {
			if c.score < fuzzyTermThreshold {
				continue
			}
			weight := c.score / 100.0
			for _, id := range s.index.name[c.term] {
				scores[id] += weight
			}
		}
	}
}

// scoreFullText is the full-text pass, always run on the full query token
// sequence: name hits weigh more than description hits.
func (s *Searcher) scoreFullText(tokens []string, scores scoreMap) {
	for _, token := range tokens {
		for _, id := range s.index.name[token] {
			scores[id] += scoreNameToken
		}
	}
	for _, token := range tokens {
		for _, id := range s.index.description[token] {
			scores[id] += scoreDescriptionToken
		}
	}
}
