// Package config loads the optional shelf.yaml collection configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/lint"
)

// FileName is the configuration file looked up at the collection root.
const FileName = "shelf.yaml"

// Off disables a rule in the rules map. Quote it in YAML ("off"), otherwise
// the YAML parser reads it as a boolean.
const Off = "off"

// Config describes a collection's layout and lint policy.
type Config struct {
	// Index is the relative path of the index document. Default "README.md".
	Index string `yaml:"index"`

	// ArticlesDir is the directory whose documents must appear in the index
	// TOC. Default "articles".
	ArticlesDir string `yaml:"articles_dir"`

	// Include and Exclude are doublestar globs applied when walking the
	// collection. Default include: "**/*.md".
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// Languages replaces the recognized fence tag set when non-empty.
	Languages []string `yaml:"languages"`

	// Required replaces the required frontmatter keys when non-empty.
	Required []string `yaml:"required"`

	// Rules maps rule name to "off" or a severity (error, warning, info).
	Rules map[string]string `yaml:"rules"`
}

// Default returns the zero-configuration behavior.
func Default() Config {
	return Config{
		Index:       "README.md",
		ArticlesDir: "articles",
		Include:     []string{"**/*.md"},
	}
}

// Load reads the configuration at the collection root. A missing file is not
// an error and yields Default(); malformed YAML is an error.
func Load(root string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes configuration YAML, filling unset fields with defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	if cfg.Index == "" {
		cfg.Index = "README.md"
	}
	if cfg.ArticlesDir == "" {
		cfg.ArticlesDir = "articles"
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*.md"}
	}

	for rule, val := range cfg.Rules {
		if val == Off {
			continue
		}
		if _, err := core.ParseSeverity(val); err != nil {
			return Config{}, fmt.Errorf("rule %q: %w", rule, err)
		}
	}

	return cfg, nil
}

// BuildRules constructs the rule set described by the configuration.
func (c Config) BuildRules() []lint.Rule {
	return []lint.Rule{
		lint.NewDeadLinksRule(),
		lint.NewFenceLanguageRule(c.Languages),
		lint.NewMermaidRule(),
		lint.NewFrontmatterRule(c.Required),
		lint.NewSingleH1Rule(),
		lint.NewTOCRule(c.ArticlesDir),
	}
}

// RunnerOptions translates the rules map into runner configuration.
func (c Config) RunnerOptions() []lint.RunnerOption {
	var opts []lint.RunnerOption
	for rule, val := range c.Rules {
		if val == Off {
			opts = append(opts, lint.WithDisabled(rule))
			continue
		}
		if sev, err := core.ParseSeverity(val); err == nil {
			opts = append(opts, lint.WithSeverity(rule, sev))
		}
	}
	return opts
}
