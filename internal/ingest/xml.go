// Package ingest turns the structured Datenfluss XML export into a catalog
// snapshot.
package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridwerk/flowsearch/internal/domain"
)

// xmlFlow mirrors one Datenfluss element of the source file.
type xmlFlow struct {
	ID           string    `xml:"Custom_ID"`
	Name         string    `xml:"Name_des_Datenflusses"`
	Description  string    `xml:"Beschreibung"`
	Transmission string    `xml:"Uebertragungsweg"`
	Format       string    `xml:"Format"`
	Trigger      string    `xml:"Ausloser"`
	Source       xmlSystem `xml:"QuelleSystem"`
	Target       xmlSystem `xml:"Zielsystem"`
	Steps        []xmlStep `xml:"Prozessschritte>Prozessschritt"`
}

type xmlSystem struct {
	Name string `xml:"n"`
}

type xmlStep struct {
	StepType  string `xml:"Schritttyp"`
	Interface string `xml:"Schnittstelle"`
}

// LoadFile parses the catalog file at path. A parse failure or an invalid
// catalog is a construction-time error; the caller keeps its previous
// snapshot.
func LoadFile(path string) (domain.Catalog, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := Parse(f)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return catalog, nil
}

// Parse reads Datenfluss elements at any depth of the document and builds a
// validated catalog. Missing child elements degrade to empty fields, never
// to an error.
func Parse(r io.Reader) (domain.Catalog, error) {
	dec := xml.NewDecoder(r)

	var flows []domain.Flow
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Datenfluss" {
			continue
		}

		var xf xmlFlow
		if err := dec.DecodeElement(&xf, &start); err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: decode Datenfluss: %w", domain.ErrInvalidCatalog, err)
		}
		flows = append(flows, toFlow(xf))
	}

	catalog := domain.NewCatalog(flows)
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, err
	}
	return catalog, nil
}

func toFlow(xf xmlFlow) domain.Flow {
	steps := make([]domain.ProcessStep, 0, len(xf.Steps))
	for _, s := range xf.Steps {
		steps = append(steps, domain.ProcessStep{
			StepType:  strings.TrimSpace(s.StepType),
			Interface: strings.TrimSpace(s.Interface),
		})
	}
	return domain.Flow{
		ID:                 strings.TrimSpace(xf.ID),
		Name:               strings.TrimSpace(xf.Name),
		Description:        strings.TrimSpace(xf.Description),
		TransmissionMethod: strings.TrimSpace(xf.Transmission),
		Format:             strings.TrimSpace(xf.Format),
		Trigger:            strings.TrimSpace(xf.Trigger),
		SourceSystem:       strings.TrimSpace(xf.Source.Name),
		TargetSystem:       strings.TrimSpace(xf.Target.Name),
		ProcessSteps:       steps,
	}
}
