package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gridwerk/flowsearch/internal/domain"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Datenfluesse>
  <Export>
    <Datenfluss>
      <Custom_ID> F-001 </Custom_ID>
      <Name_des_Datenflusses>Nominierung an MIRA</Name_des_Datenflusses>
      <Beschreibung>Gasmengen Meldung</Beschreibung>
      <Uebertragungsweg>AS4;SMTP</Uebertragungsweg>
      <Format>NOMINT</Format>
      <Ausloser>stündlich</Ausloser>
      <QuelleSystem><n>GRID</n></QuelleSystem>
      <Zielsystem><n>MIRA</n></Zielsystem>
      <Prozessschritte>
        <Prozessschritt>
          <Schritttyp>Versand</Schritttyp>
          <Schnittstelle>IF-NOM-01</Schnittstelle>
        </Prozessschritt>
      </Prozessschritte>
    </Datenfluss>
    <Datenfluss>
      <Custom_ID>F-002</Custom_ID>
      <Name_des_Datenflusses>Allokation</Name_des_Datenflusses>
      <Format>ALOCAT</Format>
      <QuelleSystem><n>GAS-X</n></QuelleSystem>
      <Zielsystem><n>BKN</n></Zielsystem>
    </Datenfluss>
  </Export>
</Datenfluesse>`

func TestParse(t *testing.T) {
	catalog, err := Parse(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(catalog.Flows) != 2 {
		t.Fatalf("flows = %d, want 2", len(catalog.Flows))
	}

	want := domain.Flow{
		ID:                 "F-001",
		Name:               "Nominierung an MIRA",
		Description:        "Gasmengen Meldung",
		TransmissionMethod: "AS4;SMTP",
		Format:             "NOMINT",
		Trigger:            "stündlich",
		SourceSystem:       "GRID",
		TargetSystem:       "MIRA",
		ProcessSteps:       []domain.ProcessStep{{StepType: "Versand", Interface: "IF-NOM-01"}},
	}
	if got := catalog.Flows[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("flow = %+v, want %+v", got, want)
	}

	// Missing children degrade to empty fields.
	if got := catalog.Flows[1]; got.Description != "" || got.Trigger != "" || len(got.ProcessSteps) != 0 {
		t.Errorf("optional fields not empty: %+v", got)
	}

	if want := []string{"BKN", "GAS-X", "GRID", "MIRA"}; !reflect.DeepEqual(catalog.Systems, want) {
		t.Errorf("systems = %v, want %v", catalog.Systems, want)
	}
	if want := []string{"AS4", "SMTP"}; !reflect.DeepEqual(catalog.TransmissionMethods, want) {
		t.Errorf("methods = %v, want %v", catalog.TransmissionMethods, want)
	}
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<Datenfluesse><Datenfluss>"))
	if !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestParse_DuplicateIDs(t *testing.T) {
	doc := `<Datenfluesse>
  <Datenfluss><Custom_ID>F-001</Custom_ID></Datenfluss>
  <Datenfluss><Custom_ID>F-001</Custom_ID></Datenfluss>
</Datenfluesse>`
	_, err := Parse(strings.NewReader(doc))
	if !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datenfluesse.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(catalog.Flows) != 2 {
		t.Errorf("flows = %d, want 2", len(catalog.Flows))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
