package search

import (
	"fmt"
	"strings"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// maxMentionedSystems bounds how many involved systems a multi-result
// answer lists.
const maxMentionedSystems = 5

// synthesizeResponse turns structured results into one German sentence:
// recognized entities, result count (with per-flow detail for a single
// hit, involved systems for several), and a related-flow clause. Pure
// function of its inputs.
func synthesizeResponse(
	query string,
	direct []domain.ScoredFlow,
	related []domain.Flow,
	entities domain.QueryEntities,
) string {
	if len(direct) == 0 && len(related) == 0 {
		return fmt.Sprintf("Ich konnte keine Datenflüsse finden, die zu Ihrer Anfrage '%s' passen.", query)
	}

	var b strings.Builder

	if mention := entityMention(entities); mention != "" {
		fmt.Fprintf(&b, "Für Ihre Anfrage zu %s habe ich ", mention)
	} else {
		fmt.Fprintf(&b, "Für Ihre Anfrage '%s' habe ich ", query)
	}

	switch {
	case len(direct) == 1:
		flow := direct[0]
		name := flow.Name
		if name == "" {
			name = flow.ID
		}
		fmt.Fprintf(&b, "einen passenden Datenfluss gefunden: '%s'", name)
		if details := flowDetails(flow.Flow); details != "" {
			fmt.Fprintf(&b, " (%s)", details)
		}
	case len(direct) > 1:
		fmt.Fprintf(&b, "%d passende Datenflüsse gefunden", len(direct))
		if systems := matchingSystems(direct); len(systems) > 0 {
			if len(systems) > maxMentionedSystems {
				systems = systems[:maxMentionedSystems]
			}
			fmt.Fprintf(&b, ", beteiligt sind die Systeme %s", strings.Join(systems, ", "))
		}
	default:
		b.WriteString("keine direkt passenden Datenflüsse gefunden")
	}

	if len(related) > 0 {
		fmt.Fprintf(&b,
			". Zusätzlich gibt es %d verwandte Datenflüsse, die mit ähnlichen Systemen verbunden sind",
			len(related))
	} else {
		b.WriteString(".")
	}

	return b.String()
}

// entityMention words the recognized entities, singular or plural per
// category, joined by " und ".
func entityMention(entities domain.QueryEntities) string {
	var parts []string

	parts = appendMention(parts, entities.Systems, "das System", "die Systeme")
	parts = appendMention(parts, entities.Formats, "das Format", "die Formate")
	parts = appendMention(parts, entities.TransmissionMethods,
		"die Übertragungsmethode", "die Übertragungsmethoden")
	parts = appendMention(parts, entities.Interfaces, "die Schnittstelle", "die Schnittstellen")

	return strings.Join(parts, " und ")
}

func appendMention(parts, values []string, singular, plural string) []string {
	switch len(values) {
	case 0:
		return parts
	case 1:
		return append(parts, singular+" "+values[0])
	default:
		return append(parts, plural+" "+strings.Join(values, ", "))
	}
}

// flowDetails describes a single flow's endpoints, format and transport.
func flowDetails(flow domain.Flow) string {
	var details []string
	if flow.SourceSystem != "" && flow.TargetSystem != "" {
		details = append(details, fmt.Sprintf("von %s nach %s", flow.SourceSystem, flow.TargetSystem))
	}
	if flow.Format != "" {
		details = append(details, "im Format "+flow.Format)
	}
	if flow.TransmissionMethod != "" {
		details = append(details, "über "+flow.TransmissionMethod)
	}
	return strings.Join(details, ", ")
}
