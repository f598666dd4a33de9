// Package domain holds the core value types of the flow catalog.
package domain

import "strings"

// ProcessStep is one step in a flow's processing chain.
type ProcessStep struct {
	StepType  string `json:"step_type"`
	Interface string `json:"interface"`
}

// Flow describes one data transfer between two named systems.
// Optional fields are empty strings, never absent keys.
type Flow struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	TransmissionMethod string        `json:"transmission_method"`
	Format             string        `json:"format"`
	Trigger            string        `json:"trigger"`
	SourceSystem       string        `json:"source_system"`
	TargetSystem       string        `json:"target_system"`
	ProcessSteps       []ProcessStep `json:"process_steps"`
}

// TransmissionMethods splits the possibly ";"-delimited method field into
// trimmed parts, skipping empties.
func (f Flow) TransmissionMethods() []string {
	if f.TransmissionMethod == "" {
		return nil
	}
	parts := strings.Split(f.TransmissionMethod, ";")
	methods := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			methods = append(methods, p)
		}
	}
	return methods
}

// References reports whether the flow has the given system as source or target.
func (f Flow) References(system string) bool {
	return f.SourceSystem == system || f.TargetSystem == system
}
