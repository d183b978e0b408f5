package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyFile is the on-disk shape of a scoring policy override file:
// a map of analyzer type to partial policy.
type policyFile struct {
	Analyzers map[string]Policy `yaml:"analyzers"`
}

// LoadPolicyFile reads per-analyzer policy overrides from a YAML file.
// Analyzers absent from the file keep their built-in defaults.
func LoadPolicyFile(path string) (map[string]Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	if file.Analyzers == nil {
		return map[string]Policy{}, nil
	}
	return file.Analyzers, nil
}
