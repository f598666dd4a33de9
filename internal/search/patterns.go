package search

import "strings"

// directionTemplate is one "X ... to Y" phrasing: a lead keyword, a link
// keyword, and whether the captured pair matches either orientation.
// Templates are data so new phrasings need no matching-logic changes, and
// matching works on word scanning rather than a regex engine.
type directionTemplate struct {
	lead          string
	link          string
	bidirectional bool
}

// Bilingual templates in fixed priority order; only the first matching
// template is applied.
var directionTemplates = []directionTemplate{
	{lead: "von", link: "nach"},
	{lead: "from", link: "to"},
	{lead: "zwischen", link: "und", bidirectional: true},
	{lead: "between", link: "and", bidirectional: true},
}

// scoreDirectional is the directional-pattern pass. The lowercase raw query
// is scanned for the templates above; each captured phrase must resolve to
// a system or the whole pass contributes nothing. A resolved pair gives a
// flat boost to every flow connecting the two systems (order-sensitive for
// from/to, either order for between).
func (s *Searcher) scoreDirectional(query string, scores scoreMap) {
	fields := strings.Fields(query)

	for _, tpl := range directionTemplates {
		phrase1, phrase2, ok := matchTemplate(fields, tpl)
		if !ok {
			continue
		}

		system1 := s.ResolveSystem(phrase1)
		system2 := s.ResolveSystem(phrase2)
		if system1 == "" || system2 == "" {
			return
		}

		for _, flow := range s.catalog.Flows {
			forward := flow.SourceSystem == system1 && flow.TargetSystem == system2
			reverse := flow.SourceSystem == system2 && flow.TargetSystem == system1
			if forward || (tpl.bidirectional && reverse) {
				scores[flow.ID] += scoreDirectionalMatch
			}
		}
		return
	}
}

// matchTemplate scans the query words for "lead <phrase1> ... link
// <phrase2>" and captures the word following each keyword. Captures are
// trimmed to their leading word-character run.
func matchTemplate(fields []string, tpl directionTemplate) (string, string, bool) {
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] != tpl.lead {
			continue
		}
		phrase1 := leadingWord(fields[i+1])
		if phrase1 == "" {
			continue
		}
		for j := i + 2; j+1 < len(fields); j++ {
			if fields[j] != tpl.link {
				continue
			}
			if phrase2 := leadingWord(fields[j+1]); phrase2 != "" {
				return phrase1, phrase2, true
			}
		}
	}
	return "", "", false
}
