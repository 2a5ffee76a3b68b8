package prenomina

import (
	"fmt"
	"strings"
)

// File labels used in user-facing errors.
const (
	FileNomina    = "nómina"
	FileTesoreria = "tesorería"
)

// MissingColumn describes one required column absent after normalization.
type MissingColumn struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	// Suggestion is the closest header actually found, when one exists.
	Suggestion string `json:"suggestion,omitempty"`
}

// SchemaError reports a structural problem with an uploaded table: required
// columns missing after normalization, or two distinct raw headers collapsing
// to the same normalized identifier. It is fatal to the run.
type SchemaError struct {
	File      string
	Missing   []MissingColumn
	Collision []string // raw headers that normalized to the same name
}

func (e *SchemaError) Error() string {
	if len(e.Collision) > 0 {
		return fmt.Sprintf("archivo de %s: las columnas %s colisionan tras la normalización", e.File, strings.Join(e.Collision, ", "))
	}
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		desc := fmt.Sprintf("%q (normalizada: %q)", m.Raw, m.Normalized)
		if m.Suggestion != "" {
			desc += fmt.Sprintf(", ¿quiso decir %q?", m.Suggestion)
		}
		parts = append(parts, desc)
	}
	return fmt.Sprintf("archivo de %s: faltan columnas requeridas: %s", e.File, strings.Join(parts, "; "))
}

// EmptyResultError signals that an input table became empty after filtering.
// The run stops gracefully instead of producing a misleading workbook.
type EmptyResultError struct {
	File   string
	Reason string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("el archivo de %s quedó vacío tras el filtrado: %s", e.File, e.Reason)
}
