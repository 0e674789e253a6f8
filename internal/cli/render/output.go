package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// WriteStructured writes v as JSON or YAML. It returns false for text
// output so the caller can fall back to its renderer.
func WriteStructured(out io.Writer, format config.OutputFormat, v any) (bool, error) {
	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return true, err
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}
