package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oxhq/sgrep/lang"
)

// Parse decodes rule-file YAML bytes into a RawRuleSet without
// compiling it — useful for validating shape before a registry exists.
func Parse(data []byte) (RawRuleSet, error) {
	var raw RawRuleSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawRuleSet{}, fmt.Errorf("rule: parse: %w", err)
	}
	return raw, nil
}

// LoadFile reads a rule file from disk and compiles it against registry.
func LoadFile(path string, registry *lang.Registry) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rule: %w", err)
	}
	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rule: %s: %w", path, err)
	}
	set, err := CompileSet(raw, registry)
	if err != nil {
		return nil, fmt.Errorf("rule: %s: %w", path, err)
	}
	return set, nil
}
