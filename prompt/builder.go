package prompt

import (
	"fmt"
	"strings"

	"carouselgen/ledger"
)

// Payload is the request payload produced by the builder: the prompt text
// plus structured generation parameters.
type Payload struct {
	Prompt     string
	Resolution string
}

// StripBuilder builds prompts for 5-slide horizontal carousel strips.
//
// Build is pure and deterministic: identical items produce byte-identical
// payloads. Unknown style or pack names degrade to generic defaults rather
// than failing; the remote model still receives a usable prompt.
type StripBuilder struct {
	// Resolution hint forwarded with every request, e.g. "1024x1024".
	Resolution string
}

// NewStripBuilder creates a builder with the given resolution hint.
func NewStripBuilder(resolution string) *StripBuilder {
	return &StripBuilder{Resolution: resolution}
}

// Build maps a work item's descriptor fields to the final request payload.
func (b *StripBuilder) Build(item *ledger.Item) Payload {
	visual := VisualForStyle(item.StyleName)
	slides := SlidesForPack(item.PackName)

	var sb strings.Builder
	sb.WriteString("Create a horizontal banner showing 5 carousel slides in a row.\n\n")
	fmt.Fprintf(&sb, "STYLE: %s - %s\n\n", strings.ToUpper(item.StyleName), visual.Visual)
	sb.WriteString("Show 5 slides side by side. Each slide has bold text:\n")
	sb.WriteString(slides)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Make it clean and cohesive in the %s style for %s.",
		item.StyleName, item.IndustryName)

	return Payload{
		Prompt:     sb.String(),
		Resolution: b.Resolution,
	}
}

// BuildDetailed builds the long-form prompt used at enumeration time. It
// includes the full visual direction, the pack's slide sequence, and
// industry content guidance from the catalog. Like Build, it is pure and
// degrades gracefully on unknown keys.
func BuildDetailed(industry *Industry, pack *Pack, styleName string) string {
	visual := VisualForStyle(styleName)

	var slides []string
	for i, s := range pack.Slides {
		slides = append(slides, fmt.Sprintf("Slide %d: %s", i+1, s))
	}
	slidesText := strings.Join(slides, ", ")
	if slidesText == "" {
		slidesText = genericSlides
	}

	tribe := firstOr(industry.Examples.TribeCallouts, "Target Audience")
	pain := firstOr(industry.Examples.PainPoints, "Common problem")
	stat := firstOr(industry.Examples.Stats, "90%+ results")
	cta := firstOr(industry.Examples.CTAs, "Get Started")

	var sb strings.Builder
	sb.WriteString("Create a single horizontal image showing 5 Instagram carousel slides side by side.\n\n")
	fmt.Fprintf(&sb, "INDUSTRY: %s (%s)\n", industry.Name, industry.Sector)
	fmt.Fprintf(&sb, "TONE: %s\n", industry.Tone)
	fmt.Fprintf(&sb, "PACK: %s\n\n", pack.Name)
	fmt.Fprintf(&sb, "STYLE: %s\n", strings.ToUpper(styleName))
	fmt.Fprintf(&sb, "- Visual: %s\n", visual.Visual)
	fmt.Fprintf(&sb, "- Colors: %s\n", visual.Colors)
	fmt.Fprintf(&sb, "- Typography: %s\n\n", visual.Typography)
	fmt.Fprintf(&sb, "SLIDE STRUCTURE:\n%s\n\n", slidesText)
	sb.WriteString("CONTENT GUIDANCE:\n")
	fmt.Fprintf(&sb, "- Target audience example: %q\n", tribe)
	fmt.Fprintf(&sb, "- Pain point example: %q\n", pain)
	fmt.Fprintf(&sb, "- Stat example: %q\n", stat)
	fmt.Fprintf(&sb, "- CTA example: %q\n\n", cta)
	sb.WriteString("DESIGN PRINCIPLES:\n")
	sb.WriteString("1. MESSAGE FIRST - Text must be instantly readable\n")
	sb.WriteString("2. Clean layouts with generous breathing room\n")
	sb.WriteString("3. Limited color palette (2-3 colors max)\n")
	sb.WriteString("4. Consistent visual language across all 5 slides\n")
	sb.WriteString("5. Typography-driven, not decoration-driven\n")
	sb.WriteString("6. NO busy backgrounds or overwhelming patterns\n\n")
	sb.WriteString("Keep text large and clear. Make it scroll-stopping.")

	return sb.String()
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
