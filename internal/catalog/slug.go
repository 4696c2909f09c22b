package catalog

import "strings"

// categoryAliases folds historical category spellings onto the
// canonical plural slugs the storefront routes by. Unknown categories
// pass through slugified unchanged; add new aliases here, never by
// branching.
var categoryAliases = map[string]string{
	"anime-figure":   "anime-figures",
	"figure":         "anime-figures",
	"figures":        "anime-figures",
	"keychain":       "keychains",
	"key-chain":      "keychains",
	"key-chains":     "keychains",
	"poster":         "posters",
	"plushie":        "plushies",
	"plush":          "plushies",
	"plushies-toys":  "plushies",
	"t-shirt":        "t-shirts",
	"tshirt":         "t-shirts",
	"tshirts":        "t-shirts",
	"hoodie":         "hoodies",
	"sticker":        "stickers",
	"manga-comic":    "manga",
	"manga-comics":   "manga",
	"accessory":      "accessories",
	"collectible":    "collectibles",
	"action-figure":  "anime-figures",
	"action-figures": "anime-figures",
}

// Slugify lowercases, converts separators to dashes and strips
// everything outside [a-z0-9-].
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// CategorySlug slugifies the category and applies the alias table.
func CategorySlug(category string) string {
	slug := Slugify(category)
	if canonical, ok := categoryAliases[slug]; ok {
		return canonical
	}
	return slug
}
