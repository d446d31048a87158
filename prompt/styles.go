package prompt

// StyleVisual is the compact visual direction for one named style.
type StyleVisual struct {
	Visual     string
	Colors     string
	Typography string
}

// styleVisuals maps style names to their visual direction. Styles outside
// this table fall back to a generic description built from the style name
// itself; an unknown style is never an error.
var styleVisuals = map[string]StyleVisual{
	"Modern Clean": {
		Visual:     "white background, blue accent, clean sans-serif font",
		Colors:     "Fresh current palette, single accent color",
		Typography: "Clean sans-serif",
	},
	"Minimalist": {
		Visual:     "pure white, thin gray text, maximum whitespace",
		Colors:     "White/light gray background, single muted accent",
		Typography: "Thin elegant sans-serif",
	},
	"Simple Bold": {
		Visual:     "black and white only, huge bold text",
		Colors:     "Pure black and white only",
		Typography: "Massive bold condensed",
	},
	"Elegant Premium": {
		Visual:     "navy and cream, gold accents, serif font",
		Colors:     "Navy, cream, subtle gold accents",
		Typography: "Playfair or Didot style serif",
	},
	"Aesthetic Soft": {
		Visual:     "pastel pink/sage gradient, rounded corners",
		Colors:     "Blush pink, sage green, soft lavender pastels",
		Typography: "Modern rounded sans-serif",
	},
	"Professional Corporate": {
		Visual:     "blue and white, clean grid layout",
		Colors:     "Blue color scheme with white",
		Typography: "Professional sans-serif",
	},
	"Warm Friendly": {
		Visual:     "coral and peach tones, rounded friendly font",
		Colors:     "Coral, peach, cream, soft orange",
		Typography: "Rounded friendly sans-serif",
	},
	"Dark Dramatic": {
		Visual:     "charcoal background, white text, moody",
		Colors:     "Charcoal or navy backgrounds, white text",
		Typography: "Bold contrast typography",
	},
	"Playful Colorful": {
		Visual:     "bright primary colors, fun shapes",
		Colors:     "Vibrant harmonious primaries",
		Typography: "Bold playful sans-serif",
	},
	"Soft Organic": {
		Visual:     "earth tones (sage, terracotta), natural feel",
		Colors:     "Sage, terracotta, sand, cream",
		Typography: "Soft rounded serif or sans",
	},
	"Retro Vintage": {
		Visual:     "faded orange/brown, 70s typography",
		Colors:     "Faded orange, brown, cream, mustard",
		Typography: "Retro-inspired with character",
	},
	"Tech Futuristic": {
		Visual:     "dark mode, neon cyan accents",
		Colors:     "Near black with neon cyan/purple/green",
		Typography: "Modern tech sans-serif",
	},
	"Editorial Magazine": {
		Visual:     "black/white with red accent, serif headlines",
		Colors:     "Black, white, one accent color",
		Typography: "Elegant serif headlines",
	},
	"Bold Typography": {
		Visual:     "giant text filling slides, color blocks",
		Colors:     "High contrast color blocks",
		Typography: "Massive bold typography as art",
	},
	"Handcrafted Artisan": {
		Visual:     "craft paper texture, hand-lettered",
		Colors:     "Warm craft paper tones",
		Typography: "Hand-lettered style",
	},
	"Lo-fi Raw": {
		Visual:     "unpolished, casual handwriting, authentic",
		Colors:     "Muted desaturated, imperfect",
		Typography: "Casual handwritten or simple system",
	},
}

// slideContent maps pack names to the compact 5-slide text layout used in
// the strip prompt. Packs outside this table get the generic layout.
var slideContent = map[string]string{
	"For [Tribe] Only":             "Slide1:'For You' Slide2:'Problem' Slide3:'Solution' Slide4:'Quote' Slide5:'Join'",
	"Founder Story / Anti-Ad":      "Slide1:'Truth' Slide2:'Before' Slide3:'After' Slide4:'Proof' Slide5:'Start'",
	"Social Proof Carousel":        "Slide1:'Claim' Slide2:'Stats' Slide3:'Review' Slide4:'Features' Slide5:'CTA'",
	"Myth Buster Carousel":         "Slide1:'Myth' Slide2:'Why' Slide3:'Truth' Slide4:'Proof' Slide5:'Learn'",
	"Insider Secret Reveal":        "Slide1:'Secret' Slide2:'Swipe' Slide3:'Tips' Slide4:'Works' Slide5:'Save'",
	"Problem → Solution Carousel":  "Slide1:'Stop' Slide2:'Before/After' Slide3:'How' Slide4:'Results' Slide5:'Start'",
	"Price Math Carousel":          "Slide1:'Price' Slide2:'Compare' Slide3:'Include' Slide4:'Worth it' Slide5:'Now'",
	"X vs Y Comparison":            "Slide1:'X vs Y' Slide2:'Compare' Slide3:'Winner' Slide4:'Proof' Slide5:'Try'",
	"Educational Carousel":         "Slide1:'Hook' Slide2:'Point 1' Slide3:'Point 2' Slide4:'Tip' Slide5:'Follow'",
	"FOMO Launch Carousel":         "Slide1:'Limited' Slide2:'Product' Slide3:'Includes' Slide4:'Proof' Slide5:'Act'",
}

// genericSlides is the fallback slide layout for unknown packs.
const genericSlides = "Slide1:'Hook' Slide2:'Point' Slide3:'Point' Slide4:'Proof' Slide5:'CTA'"

// VisualForStyle returns the visual direction for a style name, or a
// generic direction built from the name itself when unknown.
func VisualForStyle(name string) StyleVisual {
	if v, ok := styleVisuals[name]; ok {
		return v
	}
	return StyleVisual{Visual: name}
}

// SlidesForPack returns the compact slide layout for a pack name, or the
// generic layout when unknown.
func SlidesForPack(name string) string {
	if s, ok := slideContent[name]; ok {
		return s
	}
	return genericSlides
}

// KnownStyle returns true if the style has an entry in the visual table.
func KnownStyle(name string) bool {
	_, ok := styleVisuals[name]
	return ok
}
