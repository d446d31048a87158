package prompt

import (
	"testing"

	"carouselgen/ledger"
)

func testCatalog() *Catalog {
	return &Catalog{
		Version: "4.0",
		Industries: []Industry{
			{
				ID:     "pet_care",
				Name:   "Pet Care",
				Sector: "E-commerce",
				Packs:  []string{"myth_buster", "missing_pack"},
				Styles: StyleTiers{
					Primary:   []string{"Warm Friendly", "Soft Organic"},
					Secondary: []string{"Playful Colorful"},
				},
			},
			{
				ID:     "devtools",
				Name:   "Developer Tools",
				Sector: "SaaS",
				Packs:  []string{"social_proof"},
				Styles: StyleTiers{
					Primary: []string{"Tech Futuristic"},
				},
			},
		},
		Packs: []Pack{
			{ID: "myth_buster", Name: "Myth Buster Carousel", Hook: "Think X? Wrong."},
			{ID: "social_proof", Name: "Social Proof Carousel", Hook: "10K teams trust us"},
		},
	}
}

func TestEnumerateCombinations(t *testing.T) {
	l := Enumerate(testCatalog())

	// pet_care: 1 existing pack x 3 styles; devtools: 1 pack x 1 style.
	if l.TotalPrompts != 4 {
		t.Fatalf("TotalPrompts = %d, want 4", l.TotalPrompts)
	}
	if len(l.Prompts) != 4 {
		t.Fatalf("len(Prompts) = %d, want 4", len(l.Prompts))
	}
	if l.Version != LedgerVersion {
		t.Errorf("Version = %q, want %q", l.Version, LedgerVersion)
	}
}

func TestEnumerateAssignsSequentialIDs(t *testing.T) {
	l := Enumerate(testCatalog())

	for i, it := range l.Prompts {
		if it.ID != i+1 {
			t.Errorf("item %d has id %d, want %d", i, it.ID, i+1)
		}
	}
}

func TestEnumerateIsDeterministic(t *testing.T) {
	first := Enumerate(testCatalog())
	second := Enumerate(testCatalog())

	for i := range first.Prompts {
		a, b := first.Prompts[i], second.Prompts[i]
		if a.ID != b.ID || a.Filename != b.Filename || a.Prompt != b.Prompt {
			t.Errorf("item %d differs between enumerations", i)
		}
	}
}

func TestEnumerateStyleTiers(t *testing.T) {
	l := Enumerate(testCatalog())

	wantTiers := []string{"primary", "primary", "secondary", "primary"}
	for i, it := range l.Prompts {
		if it.StyleTier != wantTiers[i] {
			t.Errorf("item %d tier = %q, want %q", i+1, it.StyleTier, wantTiers[i])
		}
	}
}

func TestEnumerateFilenames(t *testing.T) {
	l := Enumerate(testCatalog())

	want := "001_pet_care_myth_buster_warm_friendly.png"
	if l.Prompts[0].Filename != want {
		t.Errorf("first filename = %q, want %q", l.Prompts[0].Filename, want)
	}
}

func TestEnumerateItemsStartPending(t *testing.T) {
	l := Enumerate(testCatalog())

	for _, it := range l.Prompts {
		if it.Status() != ledger.StatusPending {
			t.Errorf("item %d status = %q, want pending", it.ID, it.Status())
		}
	}
	if got := len(l.Pending()); got != 4 {
		t.Errorf("Pending() = %d items, want 4", got)
	}
}
