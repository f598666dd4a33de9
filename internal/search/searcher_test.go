package search

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/gridwerk/flowsearch/internal/domain"
)

func TestSearch_DirectedQuery(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("von GRID nach MIRA", 0)

	if got, want := scoredIDs(result.DirectResults), []string{"F-001", "F-002", "F-004"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("direct = %v, want %v", got, want)
	}
	// F-001: directed system boost, name hit, directional pattern.
	// F-002: system matches plus a name hit. F-004: directed source only.
	for i, want := range []float64{9.0, 4.0, 2.0} {
		if got := result.DirectResults[i].SearchScore; got != want {
			t.Errorf("score[%d] = %v, want %v", i, got, want)
		}
	}
	if want := []string{"GRID", "MIRA", "Marktpartner"}; !reflect.DeepEqual(result.MatchingSystems, want) {
		t.Errorf("matching systems = %v, want %v", result.MatchingSystems, want)
	}
	if result.RelatedFlows == nil || len(result.RelatedFlows) != 0 {
		t.Errorf("related = %v, want empty non-nil", result.RelatedFlows)
	}
	if result.QueryEntities.Direction != domain.DirectionFrom {
		t.Errorf("direction = %q, want from", result.QueryEntities.Direction)
	}
}

func TestSearch_IsCaseInsensitive(t *testing.T) {
	s := newTestSearcher(t)

	lower := s.Search("von grid nach mira", 0)
	upper := s.Search("VON GRID NACH MIRA", 0)
	if !reflect.DeepEqual(scoredIDs(lower.DirectResults), scoredIDs(upper.DirectResults)) {
		t.Errorf("case changed the ranking: %v vs %v",
			scoredIDs(lower.DirectResults), scoredIDs(upper.DirectResults))
	}
}

func TestSearch_SystemVariant(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("gasx", 0)

	if got, want := scoredIDs(result.DirectResults), []string{"F-003"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("direct = %v, want %v", got, want)
	}
	if got := result.DirectResults[0].SearchScore; got != 1.0 {
		t.Errorf("score = %v, want 1.0", got)
	}
	if want := []string{"GAS-X"}; !reflect.DeepEqual(result.QueryEntities.Systems, want) {
		t.Errorf("systems = %v, want %v", result.QueryEntities.Systems, want)
	}
	if !strings.Contains(result.NaturalResponse, "das System GAS-X") {
		t.Errorf("response %q does not mention the system", result.NaturalResponse)
	}
}

func TestSearch_FuzzyFallbackWithoutEntities(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("nomenierung", 0)

	if got, want := scoredIDs(result.DirectResults), []string{"F-001"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("direct = %v, want %v", got, want)
	}
	if got := result.DirectResults[0].SearchScore; got != 0.91 {
		t.Errorf("score = %v, want 0.91", got)
	}
}

func TestSearch_MaxResultsTruncates(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("mira", 2)

	if got, want := scoredIDs(result.DirectResults), []string{"F-001", "F-002"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("direct = %v, want %v", got, want)
	}
	// F-004 is squeezed out of the direct list but still related via MIRA.
	if got, want := flowIDs(result.RelatedFlows), []string{"F-004"}; !reflect.DeepEqual(got, want) {
		t.Errorf("related = %v, want %v", got, want)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("", 0)

	if len(result.DirectResults) != 0 {
		t.Errorf("direct = %v, want none", scoredIDs(result.DirectResults))
	}
	if result.RelatedFlows == nil || len(result.RelatedFlows) != 0 {
		t.Errorf("related = %v, want empty non-nil", result.RelatedFlows)
	}
	if want := "Ich konnte keine Datenflüsse finden, die zu Ihrer Anfrage '' passen."; result.NaturalResponse != want {
		t.Errorf("response = %q, want %q", result.NaturalResponse, want)
	}
}

func TestSearch_RelatedCappedButCountedInFull(t *testing.T) {
	flows := []domain.Flow{{
		ID: "F-001", Name: "Zentralfluss",
		SourceSystem: "HUB", TargetSystem: "SYS-01",
	}}
	for i := 1; i < 13; i++ {
		flows = append(flows, domain.Flow{
			ID:           fmt.Sprintf("F-%03d", i+1),
			SourceSystem: "HUB",
			TargetSystem: fmt.Sprintf("SYS-%02d", i+1),
		})
	}
	s, err := NewSearcher(domain.NewCatalog(flows), nil)
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	result := s.Search("zentralfluss", 0)

	if got, want := scoredIDs(result.DirectResults), []string{"F-001"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("direct = %v, want %v", got, want)
	}
	if len(result.RelatedFlows) != maxRelatedFlows {
		t.Errorf("len(related) = %d, want %d", len(result.RelatedFlows), maxRelatedFlows)
	}
	if !strings.Contains(result.NaturalResponse, "12 verwandte Datenflüsse") {
		t.Errorf("response %q should count all 12 related flows", result.NaturalResponse)
	}
}

func TestSearch_ExactNameRanksItsFlow(t *testing.T) {
	s := newTestSearcher(t)

	for _, flow := range s.catalog.Flows {
		result := s.Search(flow.Name, 0)
		found := false
		for _, r := range result.DirectResults {
			if r.ID == flow.ID {
				found = true
				if r.SearchScore < 1.0 {
					t.Errorf("%s scored %v for its own name, want >= 1.0", flow.ID, r.SearchScore)
				}
			}
		}
		if !found {
			t.Errorf("%s missing from results for its own name %q", flow.ID, flow.Name)
		}
	}
}

func TestSearch_ScoresSortedStrictly(t *testing.T) {
	s := newTestSearcher(t)

	result := s.Search("nominierung von mira an grid", 0)
	if len(result.DirectResults) == 0 {
		t.Fatal("no results")
	}
	for i := 1; i < len(result.DirectResults); i++ {
		if result.DirectResults[i].SearchScore > result.DirectResults[i-1].SearchScore {
			t.Errorf("results not sorted at %d: %v", i, result.DirectResults)
		}
	}
	for _, r := range result.DirectResults {
		if r.SearchScore <= 0 {
			t.Errorf("zero-score flow %s in results", r.ID)
		}
	}
}

func TestNewSearcher_RejectsInvalidCatalog(t *testing.T) {
	catalog := domain.NewCatalog([]domain.Flow{{ID: "F-001"}, {ID: "F-001"}})
	if _, err := NewSearcher(catalog, nil); err == nil {
		t.Fatal("expected error for duplicate flow IDs")
	}
}
