// Package format holds the pure presentation helpers shown alongside ranked
// listings: currency labels and marketplace badges.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency renders a whole-unit amount as US-locale currency with no
// fractional digits: 1500 -> "$1,500", 0 -> "$0".
func Currency(amount int) string {
	return usPrinter.Sprintf("$%d", amount)
}

// Badge is the short visual tag for a listing's marketplace.
type Badge struct {
	Label string `json:"label"`
	Style string `json:"style"`
}

// Style tokens consumed by the display layer.
const (
	StyleCraigslist = "purple"
	StyleFacebook   = "blue"
	StyleOfferUp    = "green"
	StyleNeutral    = "slate"
)

// MarketplaceBadge maps a listing source to its two-letter badge. The three
// known marketplaces get fixed labels and colors; anything else gets the
// first two letters uppercased and the neutral style so unrecognised
// sources still render deterministically.
func MarketplaceBadge(source string) Badge {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "craigslist":
		return Badge{Label: "CL", Style: StyleCraigslist}
	case "facebook":
		return Badge{Label: "FB", Style: StyleFacebook}
	case "offerup":
		return Badge{Label: "OU", Style: StyleOfferUp}
	}

	runes := []rune(strings.ToUpper(strings.TrimSpace(source)))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	if len(runes) == 0 {
		return Badge{Label: "??", Style: StyleNeutral}
	}
	return Badge{Label: string(runes), Style: StyleNeutral}
}
