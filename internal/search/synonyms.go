package search

import (
	"strings"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// synonymRule maps a substring trigger inside a canonical catalog value to
// the alternate surface forms users type for it. Rules are data: extending
// the vocabulary never touches matching logic.
type synonymRule struct {
	trigger  string
	variants []string
}

var systemRules = []synonymRule{
	{"MIRA", []string{"mira", "mirasystem"}},
	{"GAS-X", []string{"gasx", "gas-x", "gas x"}},
	{"GRID", []string{"grid", "netzseite"}},
	{"BKN", []string{"bkn", "bilanzkreis", "bilanzierung"}},
	{"Marktpartner", []string{"marktpartner", "shipper", "transportkunde", "lieferant"}},
	{"VHP", []string{"vhp", "portal", "web", "webportal"}},
}

var formatRules = []synonymRule{
	{"NOMINT", []string{"nominierung", "nomination", "nomint"}},
	{"NOMRES", []string{"nominierungsantwort", "confirmation", "bestätigung", "bestaetigung"}},
	{"CONTRL", []string{"kontrolle", "kontrollmeldung", "control"}},
	{"APERAK", []string{"fehler", "fehlermeldung", "error"}},
	{"ACKNOW", []string{"quittung", "bestätigung", "bestaetigung", "acknowledgement"}},
	{"ALOCAT", []string{"allokation", "allocation", "zuteilung"}},
}

var methodRules = []synonymRule{
	{"AS4", []string{"as4", "as 4", "bsi"}},
	{"AS2", []string{"as2", "as 2"}},
	{"SMTP", []string{"smtp", "email", "e-mail", "mail"}},
	{"Webservice", []string{"webservice", "web service", "web", "rest", "api"}},
}

// synonymTable maps each canonical catalog value to its variant spellings.
// Built together with the indices; read-only once construction completes.
type synonymTable struct {
	systems map[string][]string
	formats map[string][]string
	methods map[string][]string
}

func buildSynonyms(catalog domain.Catalog) synonymTable {
	return synonymTable{
		systems: applyRules(catalog.Systems, systemRules),
		formats: applyRules(catalog.Formats, formatRules),
		methods: applyRules(catalog.TransmissionMethods, methodRules),
	}
}

// applyRules collects the variants of every rule whose trigger occurs in
// the canonical value. Values matching no rule get no variants.
func applyRules(values []string, rules []synonymRule) map[string][]string {
	table := make(map[string][]string, len(values))
	for _, value := range values {
		var variants []string
		for _, rule := range rules {
			if strings.Contains(value, rule.trigger) {
				variants = append(variants, rule.variants...)
			}
		}
		table[value] = variants
	}
	return table
}
