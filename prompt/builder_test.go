package prompt

import (
	"strings"
	"testing"

	"carouselgen/ledger"
)

func testItem() *ledger.Item {
	return &ledger.Item{
		ID:           12,
		IndustryID:   "pet_care",
		IndustryName: "Pet Care",
		Sector:       "E-commerce",
		PackID:       "myth_buster",
		PackName:     "Myth Buster Carousel",
		StyleName:    "Warm Friendly",
		Filename:     "012_pet_care_myth_buster_warm_friendly.png",
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewStripBuilder("1024x1024")
	item := testItem()

	first := b.Build(item)
	second := b.Build(item)

	if first.Prompt != second.Prompt {
		t.Error("Build() produced different prompts for identical input")
	}
	if first.Resolution != second.Resolution {
		t.Error("Build() produced different resolutions for identical input")
	}
}

func TestBuildIncludesDescriptorFields(t *testing.T) {
	b := NewStripBuilder("1024x1024")
	payload := b.Build(testItem())

	for _, want := range []string{
		"WARM FRIENDLY",
		"coral and peach tones",
		"Slide1:'Myth'",
		"Pet Care",
	} {
		if !strings.Contains(payload.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, payload.Prompt)
		}
	}
}

func TestBuildUnknownStyleFallsBack(t *testing.T) {
	b := NewStripBuilder("1024x1024")
	item := testItem()
	item.StyleName = "Vaporwave Dream"
	item.PackName = "Completely New Pack"

	payload := b.Build(item)

	// Unknown keys degrade to generic content, never an error.
	if !strings.Contains(payload.Prompt, "Vaporwave Dream") {
		t.Error("unknown style name should still appear in prompt")
	}
	if !strings.Contains(payload.Prompt, genericSlides) {
		t.Error("unknown pack should use the generic slide layout")
	}
}

func TestVisualForStyle(t *testing.T) {
	tests := []struct {
		name      string
		styleName string
		known     bool
	}{
		{name: "known style", styleName: "Modern Clean", known: true},
		{name: "unknown style", styleName: "Cyber Baroque", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := VisualForStyle(tt.styleName)
			if tt.known {
				if v.Visual == tt.styleName {
					t.Error("known style should have a real visual description")
				}
				if !KnownStyle(tt.styleName) {
					t.Error("KnownStyle() = false for table entry")
				}
			} else {
				if v.Visual != tt.styleName {
					t.Errorf("unknown style visual = %q, want style name", v.Visual)
				}
				if KnownStyle(tt.styleName) {
					t.Error("KnownStyle() = true for unknown style")
				}
			}
		})
	}
}

func TestBuildDetailedUsesExamples(t *testing.T) {
	industry := &Industry{
		ID:     "pet_care",
		Name:   "Pet Care",
		Sector: "E-commerce",
		Tone:   "warm, reassuring",
		Examples: ContentExamples{
			TribeCallouts: []string{"Anxious Pet Parents"},
			PainPoints:    []string{"Worried about ingredients"},
			Stats:         []string{"2M+ happy pets"},
			CTAs:          []string{"Try risk-free"},
		},
	}
	pack := &Pack{
		ID:     "myth_buster",
		Name:   "Myth Buster Carousel",
		Slides: []string{"Myth", "Why", "Truth", "Proof", "Learn"},
	}

	got := BuildDetailed(industry, pack, "Warm Friendly")

	for _, want := range []string{
		"Anxious Pet Parents",
		"Worried about ingredients",
		"2M+ happy pets",
		"Try risk-free",
		"Slide 1: Myth",
		"WARM FRIENDLY",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("detailed prompt missing %q", want)
		}
	}

	// Determinism across invocations.
	if got != BuildDetailed(industry, pack, "Warm Friendly") {
		t.Error("BuildDetailed() is not deterministic")
	}
}

func TestBuildDetailedEmptyExamples(t *testing.T) {
	industry := &Industry{ID: "x", Name: "X", Sector: "S"}
	pack := &Pack{ID: "p", Name: "P"}

	got := BuildDetailed(industry, pack, "Nope Style")
	if !strings.Contains(got, "Target Audience") {
		t.Error("empty examples should fall back to generic guidance")
	}
	if !strings.Contains(got, genericSlides) {
		t.Error("empty slide sequence should fall back to generic layout")
	}
}
