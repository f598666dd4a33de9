package search

import (
	"sort"
	"strings"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// directionKeywords are scanned against the raw lowercase query in priority
// order: from beats to beats between, first hit wins.
var directionKeywords = []struct {
	direction domain.Direction
	words     []string
}{
	{domain.DirectionFrom, []string{"von", "from"}},
	{domain.DirectionTo, []string{"zu", "nach", "to"}},
	{domain.DirectionBetween, []string{"zwischen", "between"}},
}

// extractEntities recognizes catalog values inside the lowercase query.
//
// Systems match on shared tokens with the query first, then on variant
// substrings. Formats and transmission methods are short codes, so the
// primary test is the code itself as a substring, falling back to variants.
// Interfaces are precise identifiers and match exact substrings only.
// A token may satisfy more than one category; consumption only shrinks the
// unknown-terms residual.
func (s *Searcher) extractEntities(query string) domain.QueryEntities {
	entities := domain.QueryEntities{}

	queryTokens := tokenSet(Tokenize(query))
	consumed := map[string]struct{}{}

	for _, system := range s.catalog.Systems {
		systemTokens := Tokenize(system)
		if overlaps(systemTokens, queryTokens) {
			entities.Systems = append(entities.Systems, system)
			markConsumed(consumed, systemTokens)
			continue
		}
		for _, variant := range s.synonyms.systems[system] {
			if strings.Contains(query, variant) {
				entities.Systems = append(entities.Systems, system)
				markConsumed(consumed, strings.Fields(variant))
				break
			}
		}
	}

	for _, format := range s.catalog.Formats {
		if strings.Contains(query, strings.ToLower(format)) {
			entities.Formats = append(entities.Formats, format)
			markConsumed(consumed, strings.Fields(strings.ToLower(format)))
			continue
		}
		for _, variant := range s.synonyms.formats[format] {
			if strings.Contains(query, variant) {
				entities.Formats = append(entities.Formats, format)
				markConsumed(consumed, strings.Fields(variant))
				break
			}
		}
	}

	for _, method := range s.catalog.TransmissionMethods {
		if strings.Contains(query, strings.ToLower(method)) {
			entities.TransmissionMethods = append(entities.TransmissionMethods, method)
			markConsumed(consumed, strings.Fields(strings.ToLower(method)))
			continue
		}
		for _, variant := range s.synonyms.methods[method] {
			if strings.Contains(query, variant) {
				entities.TransmissionMethods = append(entities.TransmissionMethods, method)
				markConsumed(consumed, strings.Fields(variant))
				break
			}
		}
	}

	for _, iface := range s.catalog.Interfaces {
		if strings.Contains(query, strings.ToLower(iface)) {
			entities.Interfaces = append(entities.Interfaces, iface)
			markConsumed(consumed, strings.Fields(strings.ToLower(iface)))
		}
	}

	entities.Direction = detectDirection(query)

	for token := range queryTokens {
		if _, ok := consumed[token]; !ok {
			entities.UnknownTerms = append(entities.UnknownTerms, token)
		}
	}
	sort.Strings(entities.UnknownTerms)

	return entities
}

func detectDirection(query string) domain.Direction {
	for _, dk := range directionKeywords {
		for _, w := range dk.words {
			if strings.Contains(query, w) {
				return dk.direction
			}
		}
	}
	return domain.DirectionNone
}

func overlaps(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func markConsumed(consumed map[string]struct{}, tokens []string) {
	for _, t := range tokens {
		consumed[t] = struct{}{}
	}
}
