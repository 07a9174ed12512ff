// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders query results for the terminal and for machine
// consumers: fixed-width tables, JSON, YAML, and CSL-YAML bibliographies.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Output formats accepted by Write.
const (
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
	CSL   = "csl"
)

// WriteJSON writes v as indented JSON to w.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML to w.
func WriteYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// Structured writes v as JSON or YAML. It reports an error for any other
// format, since tables are specific to each record type.
func Structured(format string, v any, w io.Writer) error {
	switch format {
	case JSON:
		return WriteJSON(v, w)
	case YAML:
		return WriteYAML(v, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
