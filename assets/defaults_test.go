package assets

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSafeguardRulesTemplateParses(t *testing.T) {
	var file struct {
		Rules []struct {
			Pattern  string `yaml:"pattern"`
			Severity string `yaml:"severity"`
		} `yaml:"rules"`
	}
	if err := yaml.Unmarshal(SafeguardRulesTemplate, &file); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if len(file.Rules) == 0 {
		t.Fatal("expected example rules in the template")
	}
	for _, r := range file.Rules {
		if r.Pattern == "" || r.Severity == "" {
			t.Fatalf("incomplete rule %+v", r)
		}
	}
}
