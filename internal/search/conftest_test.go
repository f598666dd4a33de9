package search

import (
	"testing"

	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// testCatalog is a small slice of the real gas-market catalog shape: five
// flows covering directed transfers, a multi-valued transmission method,
// and a self-transfer.
func testCatalog() domain.Catalog {
	return domain.NewCatalog([]domain.Flow{
		{
			ID: "F-001", Name: "Nominierung an MIRA",
			Description:        "Gasmengen Meldung an das Zielsystem",
			Format:             "NOMINT",
			TransmissionMethod: "AS4",
			Trigger:            "stündlich",
			SourceSystem:       "GRID", TargetSystem: "MIRA",
			ProcessSteps: []domain.ProcessStep{{StepType: "Versand", Interface: "IF-NOM-01"}},
		},
		{
			ID: "F-002", Name: "Nominierungsantwort an GRID",
			Description:        "Antwort auf die Nominierung",
			Format:             "NOMRES",
			TransmissionMethod: "AS4;SMTP",
			SourceSystem:       "MIRA", TargetSystem: "GRID",
			ProcessSteps: []domain.ProcessStep{{StepType: "Empfang", Interface: "IF-NOM-02"}},
		},
		{
			ID: "F-003", Name: "Allokation an BKN",
			Description:        "Zuteilung der Gasmengen",
			Format:             "ALOCAT",
			TransmissionMethod: "SMTP",
			SourceSystem:       "GAS-X", TargetSystem: "BKN",
		},
		{
			ID: "F-004", Name: "Fehlermeldung an Marktpartner",
			Description:        "APERAK bei Verarbeitungsfehlern",
			Format:             "APERAK",
			TransmissionMethod: "AS2",
			SourceSystem:       "MIRA", TargetSystem: "Marktpartner",
		},
		{
			ID: "F-005", Name: "Kontrollmeldung intern",
			Format:             "CONTRL",
			TransmissionMethod: "Webservice",
			SourceSystem:       "VHP", TargetSystem: "VHP",
		},
	})
}

func newTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	s, err := NewSearcher(testCatalog(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}
	return s
}

func flowIDs(flows []domain.Flow) []string {
	ids := make([]string, 0, len(flows))
	for _, f := range flows {
		ids = append(ids, f.ID)
	}
	return ids
}

func scoredIDs(flows []domain.ScoredFlow) []string {
	ids := make([]string, 0, len(flows))
	for _, f := range flows {
		ids = append(ids, f.ID)
	}
	return ids
}
