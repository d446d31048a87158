package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

const catalogYAML = `
version: "4.0"
industries:
  - id: pet_care
    name: Pet Care
    sector: E-commerce
    tone: warm, reassuring
    packs: [myth_buster]
    styles:
      primary: [Warm Friendly]
      secondary: [Playful Colorful]
    examples:
      tribe_callouts: ["Anxious Pet Parents"]
      pain_points: ["Worried about ingredients"]
      stats: ["2M+ happy pets"]
      ctas: ["Try risk-free"]
packs:
  - id: myth_buster
    name: Myth Buster Carousel
    hook: "Think X? Wrong."
    slides: [Myth, Why, Truth, Proof, Learn]
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogYAML))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}

	if len(c.Industries) != 1 || len(c.Packs) != 1 {
		t.Fatalf("parsed %d industries, %d packs; want 1 and 1",
			len(c.Industries), len(c.Packs))
	}

	industry := c.IndustryByID("pet_care")
	if industry == nil {
		t.Fatal("IndustryByID(pet_care) = nil")
	}
	if industry.Styles.Primary[0] != "Warm Friendly" {
		t.Errorf("primary style = %q, want Warm Friendly", industry.Styles.Primary[0])
	}
	if industry.Examples.TribeCallouts[0] != "Anxious Pet Parents" {
		t.Errorf("tribe callout = %q", industry.Examples.TribeCallouts[0])
	}

	pack := c.PackByID("myth_buster")
	if pack == nil {
		t.Fatal("PackByID(myth_buster) = nil")
	}
	if len(pack.Slides) != 5 {
		t.Errorf("pack slides = %d, want 5", len(pack.Slides))
	}
}

func TestParseCatalogRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no industries", yaml: "packs:\n  - id: p\n    name: P\n"},
		{name: "no packs", yaml: "industries:\n  - id: i\n    name: I\n"},
		{name: "invalid yaml", yaml: "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("ParseCatalog() should reject this input")
			}
		})
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Version != "4.0" {
		t.Errorf("Version = %q, want 4.0", c.Version)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadCatalog() on missing file should error")
	}
}
