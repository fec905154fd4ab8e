package link

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoryRulesYAML []byte

// CategoryRule pairs a label with the keywords that select it. Rules are an
// ordered table; the first rule with a matching keyword wins.
type CategoryRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type categoryRules struct {
	Default    string         `yaml:"default"`
	Categories []CategoryRule `yaml:"categories"`
}

type Categorizer struct {
	rules        []CategoryRule
	defaultLabel string
}

func NewCategorizer() (*Categorizer, error) {
	var rules categoryRules
	if err := yaml.Unmarshal(categoryRulesYAML, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse category rules: %w", err)
	}

	if rules.Default == "" || len(rules.Categories) == 0 {
		return nil, fmt.Errorf("category rules are incomplete")
	}

	return &Categorizer{
		rules:        rules.Categories,
		defaultLabel: rules.Default,
	}, nil
}

// Run assigns a single topical label from the rule table. Matching is
// case-insensitive keyword containment over title and content; deterministic,
// no failure mode.
func (c *Categorizer) Run(title, content string) string {
	text := strings.ToLower(title + " " + content)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label
			}
		}
	}

	return c.defaultLabel
}

// DefaultCategory is the label used when no rule matches, and for degraded
// records where no content was available to categorize.
func (c *Categorizer) DefaultCategory() string {
	return c.defaultLabel
}
