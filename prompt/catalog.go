// Package prompt builds generation prompts from the static content catalog.
//
// The catalog (industries, element packs) is loaded from a YAML file; visual
// style descriptions live in a built-in table. Prompt construction is pure:
// the same item and catalog always produce byte-identical output.
package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the static configuration axes that enumeration combines:
// industries and element packs. Styles are referenced by name from the
// built-in style table.
type Catalog struct {
	Version    string     `yaml:"version"`
	Industries []Industry `yaml:"industries"`
	Packs      []Pack     `yaml:"packs"`
}

// Industry describes one target industry with its recommended packs and styles.
type Industry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Sector string `yaml:"sector"`
	Tone   string `yaml:"tone"`

	// Packs lists recommended element pack ids for this industry.
	Packs []string `yaml:"packs"`

	Styles   StyleTiers      `yaml:"styles"`
	Examples ContentExamples `yaml:"examples"`
}

// StyleTiers splits recommended styles into primary and secondary tiers.
// Enumeration walks primary styles first.
type StyleTiers struct {
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

// ContentExamples carries industry-specific copy used as prompt guidance.
type ContentExamples struct {
	TribeCallouts []string `yaml:"tribe_callouts"`
	PainPoints    []string `yaml:"pain_points"`
	Stats         []string `yaml:"stats"`
	CTAs          []string `yaml:"ctas"`
}

// Pack describes one carousel element pack: a named slide sequence with a
// hook pattern.
type Pack struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Hook   string   `yaml:"hook"`
	Slides []string `yaml:"slides"`
}

// LoadCatalog reads and parses a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML from memory.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("prompt: failed to parse catalog: %w", err)
	}
	if len(c.Industries) == 0 {
		return nil, fmt.Errorf("prompt: catalog has no industries")
	}
	if len(c.Packs) == 0 {
		return nil, fmt.Errorf("prompt: catalog has no packs")
	}
	return &c, nil
}

// PackByID returns the pack with the given id, or nil if absent.
func (c *Catalog) PackByID(id string) *Pack {
	for i := range c.Packs {
		if c.Packs[i].ID == id {
			return &c.Packs[i]
		}
	}
	return nil
}

// IndustryByID returns the industry with the given id, or nil if absent.
func (c *Catalog) IndustryByID(id string) *Industry {
	for i := range c.Industries {
		if c.Industries[i].ID == id {
			return &c.Industries[i]
		}
	}
	return nil
}
