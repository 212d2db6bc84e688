// Package ruleset loads the business rule table from its packaged YAML asset
// or from an override file.
package ruleset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
)

//go:embed celrules.yaml
var embeddedRules []byte

// rulesFile is the on-disk shape of a rule table
type rulesFile struct {
	Version string      `yaml:"version"`
	Rules   []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	When        string `yaml:"when"`
	Expression  string `yaml:"expression"`
}

// Parse decodes a YAML rule table. Unknown keys are rejected, as are entries
// without id or expression and duplicate ids.
func Parse(data []byte) (*validation.RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file rulesFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	rules := make([]validation.CelRule, 0, len(file.Rules))
	for _, entry := range file.Rules {
		rules = append(rules, validation.CelRule{
			ID:          entry.ID,
			Description: entry.Description,
			When:        entry.When,
			Expression:  entry.Expression,
		})
	}

	rs, err := validation.NewRuleSet(rules)
	if err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return rs, nil
}

// LoadFile reads and parses a rule table from path
func LoadFile(path string) (*validation.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

var loadEmbedded = sync.OnceValues(func() (*validation.RuleSet, error) {
	return Parse(embeddedRules)
})

// LoadEmbedded returns the packaged rule table. It is parsed once per process
// and the same immutable set is shared by every caller.
func LoadEmbedded() (*validation.RuleSet, error) {
	return loadEmbedded()
}

// Load returns the table at path, or the packaged table when path is empty
func Load(path string) (*validation.RuleSet, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// Embedded returns the raw packaged rule table
func Embedded() []byte {
	return bytes.Clone(embeddedRules)
}
