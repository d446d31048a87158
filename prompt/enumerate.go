package prompt

import (
	"fmt"
	"strings"

	"carouselgen/ledger"
)

// LedgerVersion is stamped in the header of enumerated ledgers.
const LedgerVersion = "4.0"

// ledgerDescription documents what the ledger holds.
const ledgerDescription = "Generated carousel prompts - Industry x Pack x Style combinations"

// Enumerate builds the full work ledger from the catalog: one item per
// industry × recommended pack × recommended style combination.
//
// The enumeration order is deterministic (catalog order; primary styles
// before secondary), so ids are stable across regenerations from the same
// catalog. Recommended pack ids missing from the catalog are skipped.
func Enumerate(catalog *Catalog) *ledger.Ledger {
	var items []*ledger.Item
	id := 0

	for i := range catalog.Industries {
		industry := &catalog.Industries[i]

		styles := make([]styleRef, 0, len(industry.Styles.Primary)+len(industry.Styles.Secondary))
		for _, s := range industry.Styles.Primary {
			styles = append(styles, styleRef{name: s, tier: "primary"})
		}
		for _, s := range industry.Styles.Secondary {
			styles = append(styles, styleRef{name: s, tier: "secondary"})
		}

		for _, packID := range industry.Packs {
			pack := catalog.PackByID(packID)
			if pack == nil {
				continue
			}

			for _, style := range styles {
				id++
				items = append(items, &ledger.Item{
					ID:           id,
					IndustryID:   industry.ID,
					IndustryName: industry.Name,
					Sector:       industry.Sector,
					PackID:       pack.ID,
					PackName:     pack.Name,
					StyleName:    style.name,
					StyleTier:    style.tier,
					HookPattern:  pack.Hook,
					Prompt:       BuildDetailed(industry, pack, style.name),
					Filename:     itemFilename(id, industry.ID, pack.ID, style.name),
				})
			}
		}
	}

	return &ledger.Ledger{
		Version:      LedgerVersion,
		Description:  ledgerDescription,
		TotalPrompts: len(items),
		Prompts:      items,
	}
}

type styleRef struct {
	name string
	tier string
}

// itemFilename builds the stable artifact filename for an item.
func itemFilename(id int, industryID, packID, styleName string) string {
	style := strings.ToLower(strings.ReplaceAll(styleName, " ", "_"))
	return fmt.Sprintf("%03d_%s_%s_%s.png", id, industryID, packID, style)
}
