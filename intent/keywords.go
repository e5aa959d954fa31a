package intent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keywords holds the trigger phrases of each intent. Matching is a
// lower-case substring check, so "bill" also fires on "billing".
type Keywords struct {
	Menu    []string `yaml:"menu"`
	Order   []string `yaml:"order"`
	Confirm []string `yaml:"confirm"`
	Reset   []string `yaml:"reset"`
	Summary []string `yaml:"summary"`
}

// DefaultKeywords returns the built-in vocabulary
func DefaultKeywords() Keywords {
	return Keywords{
		Menu:    []string{"menu", "show menu", "see menu", "what do you have", "options", "drinks"},
		Order:   []string{"want", "like", "get", "order", "have"},
		Confirm: []string{"yes", "confirm", "correct", "that's right", "that’s right", "place order"},
		Reset:   []string{"clear", "reset", "start over", "cancel"},
		Summary: []string{
			"my order", "what did i order", "order status", "what do i have",
			"order summary", "bill", "billing", "total", "how much", "price",
		},
	}
}

// LoadKeywords reads a YAML keyword file. Sections left out of the file
// keep their default vocabulary.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var fromFile Keywords
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Keywords{}, fmt.Errorf("invalid keywords file %s: %w", path, err)
	}

	return fromFile.withDefaults(), nil
}

func (k Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	return Keywords{
		Menu:    pick(k.Menu, def.Menu),
		Order:   pick(k.Order, def.Order),
		Confirm: pick(k.Confirm, def.Confirm),
		Reset:   pick(k.Reset, def.Reset),
		Summary: pick(k.Summary, def.Summary),
	}
}

func pick(words, fallback []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
