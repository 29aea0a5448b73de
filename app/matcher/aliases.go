package matcher

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed teams.yml
var defaultTeamsYAML []byte

// Aliases maps a compact team key to the surface forms that count as a match.
type Aliases map[string][]string

// DefaultAliases parses the built-in team table.
func DefaultAliases() (Aliases, error) {
	return ParseAliases(defaultTeamsYAML)
}

// LoadAliases reads a team table from a YAML file.
func LoadAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseAliases(data)
}

func ParseAliases(data []byte) (Aliases, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	aliases := make(Aliases, len(raw))
	for key, forms := range raw {
		normalized := Key(key)
		if normalized == "" {
			return nil, fmt.Errorf("invalid team key %q", key)
		}
		if len(forms) == 0 {
			return nil, fmt.Errorf("team %q must have at least one alias", key)
		}
		aliases[normalized] = forms
	}

	return aliases, nil
}
