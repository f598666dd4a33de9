package search

import (
	"reflect"
	"testing"

	"github.com/gridwerk/flowsearch/internal/domain"
)

func TestBuildIndex_NameAndDescription(t *testing.T) {
	idx := buildIndex(testCatalog())

	if got := idx.name["nominierung"]; !reflect.DeepEqual(got, []string{"F-001"}) {
		t.Errorf("name[nominierung] = %v", got)
	}
	if got := idx.name["nominierungsantwort"]; !reflect.DeepEqual(got, []string{"F-002"}) {
		t.Errorf("name[nominierungsantwort] = %v", got)
	}
	// "gasmengen" appears in two descriptions
	if got := idx.description["gasmengen"]; !reflect.DeepEqual(got, []string{"F-001", "F-003"}) {
		t.Errorf("description[gasmengen] = %v", got)
	}
}

func TestBuildIndex_RepeatedTokenKeepsDuplicates(t *testing.T) {
	catalog := domain.NewCatalog([]domain.Flow{
		{ID: "F-010", Name: "Nominierung Nominierung"},
	})
	idx := buildIndex(catalog)

	if got := idx.name["nominierung"]; !reflect.DeepEqual(got, []string{"F-010", "F-010"}) {
		t.Errorf("expected one posting per occurrence, got %v", got)
	}
}

func TestBuildIndex_SystemsShareOneIndex(t *testing.T) {
	idx := buildIndex(testCatalog())

	// MIRA is target of F-001 and source of F-002 and F-004.
	if got := idx.system["MIRA"]; !reflect.DeepEqual(got, []string{"F-001", "F-002", "F-004"}) {
		t.Errorf("system[MIRA] = %v", got)
	}
}

func TestBuildIndex_SelfTransferPostsOnce(t *testing.T) {
	idx := buildIndex(testCatalog())

	if got := idx.system["VHP"]; !reflect.DeepEqual(got, []string{"F-005"}) {
		t.Errorf("system[VHP] = %v, want single posting", got)
	}
}

func TestBuildIndex_MethodsSplitOnSemicolon(t *testing.T) {
	idx := buildIndex(testCatalog())

	if got := idx.method["AS4"]; !reflect.DeepEqual(got, []string{"F-001", "F-002"}) {
		t.Errorf("method[AS4] = %v", got)
	}
	if got := idx.method["SMTP"]; !reflect.DeepEqual(got, []string{"F-002", "F-003"}) {
		t.Errorf("method[SMTP] = %v", got)
	}
}

func TestBuildIndex_InterfacesFromProcessSteps(t *testing.T) {
	idx := buildIndex(testCatalog())

	if got := idx.iface["IF-NOM-01"]; !reflect.DeepEqual(got, []string{"F-001"}) {
		t.Errorf("iface[IF-NOM-01] = %v", got)
	}
}

func TestBuildIndex_EmptyFieldsSkipped(t *testing.T) {
	catalog := domain.NewCatalog([]domain.Flow{{ID: "F-011"}})
	idx := buildIndex(catalog)

	if len(idx.name) != 0 || len(idx.system) != 0 || len(idx.format) != 0 ||
		len(idx.method) != 0 || len(idx.iface) != 0 {
		t.Errorf("empty flow produced postings: %+v", idx)
	}
}

func TestBuildIndex_NameVocabOrder(t *testing.T) {
	idx := buildIndex(testCatalog())

	want := []string{
		"nominierung", "mira", "nominierungsantwort", "grid", "allokation",
		"bkn", "fehlermeldung", "marktpartner", "kontrollmeldung", "intern",
	}
	if !reflect.DeepEqual(idx.nameVocab, want) {
		t.Errorf("nameVocab = %v, want %v", idx.nameVocab, want)
	}
}
