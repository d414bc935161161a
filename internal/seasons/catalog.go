// Package seasons holds the static reference description of each color season.
// It is served as-is and never substituted for a model analysis.
package seasons

import (
	"strings"

	"github.com/example/color-season/internal/colorseason"
)

// Season is the reference profile of one color season.
type Season struct {
	Name            string                      `json:"season"`
	Description     string                      `json:"description"`
	Characteristics []string                    `json:"characteristics"`
	Palette         []colorseason.PaletteItem   `json:"palette"`
	Recommendations colorseason.Recommendations `json:"recommendations"`
}

// Catalog is an immutable, ordered set of seasons.
type Catalog struct {
	seasons []Season
	byName  map[string]int
}

// NewCatalog indexes the given seasons by lower-cased name.
func NewCatalog(seasons []Season) *Catalog {
	byName := make(map[string]int, len(seasons))
	for i, s := range seasons {
		byName[strings.ToLower(s.Name)] = i
	}
	return &Catalog{seasons: seasons, byName: byName}
}

// Default returns the catalog of the four classic seasons.
func Default() *Catalog {
	return NewCatalog(defaultSeasons)
}

// All returns every season in catalog order.
func (c *Catalog) All() []Season {
	out := make([]Season, len(c.seasons))
	copy(out, c.seasons)
	return out
}

// Lookup finds a season by name, ignoring case and surrounding spaces.
func (c *Catalog) Lookup(name string) (Season, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Season{}, false
	}
	return c.seasons[i], true
}

var defaultSeasons = []Season{
	{
		Name:            "Spring",
		Description:     "Bright, warm, and light colors that complement your vibrant natural features",
		Characteristics: []string{"Warm undertones", "Light to medium depth", "Clear and bright colors"},
		Palette: []colorseason.PaletteItem{
			{Hex: "#FF7F50", Name: "Coral"},
			{Hex: "#FFC107", Name: "Golden Yellow"},
			{Hex: "#98FF98", Name: "Mint Green"},
			{Hex: "#FFCBA4", Name: "Peach"},
			{Hex: "#40E0D0", Name: "Turquoise"},
			{Hex: "#FF69B4", Name: "Warm Pink"},
			{Hex: "#FFB347", Name: "Light Orange"},
			{Hex: "#8DB600", Name: "Apple Green"},
		},
		Recommendations: colorseason.Recommendations{
			Clothing: []string{
				"Coral blazers and dresses",
				"Golden yellow tops and accessories",
				"Mint green blouses and scarves",
				"Peach sweaters and cardigans",
				"Turquoise jewelry and bags",
			},
			Makeup: []string{
				"Peach or coral blush",
				"Warm brown or golden eyeshadow",
				"Coral or pink lipstick",
				"Golden highlighter",
				"Warm brown mascara and eyeliner",
			},
			Accessories: []string{
				"Gold jewelry and watches",
				"Warm-toned handbags",
				"Coral or mint scarves",
				"Golden yellow belts",
				"Turquoise statement pieces",
			},
		},
	},
	{
		Name:            "Summer",
		Description:     "Soft, cool, and light colors that enhance your gentle natural beauty",
		Characteristics: []string{"Cool undertones", "Light to medium depth", "Soft and muted colors"},
		Palette: []colorseason.PaletteItem{
			{Hex: "#FFB6C1", Name: "Pastel Pink"},
			{Hex: "#87CEEB", Name: "Sky Blue"},
			{Hex: "#E6E6FA", Name: "Lavender"},
			{Hex: "#FFFFE0", Name: "Soft Yellow"},
			{Hex: "#FF66CC", Name: "Rose"},
			{Hex: "#B0E0E6", Name: "Powder Blue"},
			{Hex: "#E0B0FF", Name: "Mauve"},
			{Hex: "#93E9BE", Name: "Seafoam"},
		},
		Recommendations: colorseason.Recommendations{
			Clothing: []string{
				"Pastel pink blouses and dresses",
				"Sky blue shirts and skirts",
				"Lavender cardigans and tops",
				"Soft yellow summer dresses",
				"Rose-colored evening wear",
			},
			Makeup: []string{
				"Soft pink blush",
				"Cool gray or lavender eyeshadow",
				"Rose or berry lipstick",
				"Pearl highlighter",
				"Cool brown or gray eyeliner",
			},
			Accessories: []string{
				"Silver jewelry and accessories",
				"Cool-toned handbags",
				"Pastel scarves and wraps",
				"Lavender or blue belts",
				"Pearl or silver statement pieces",
			},
		},
	},
	{
		Name:            "Autumn",
		Description:     "Muted, warm, and rich colors that complement your earthy natural tones",
		Characteristics: []string{"Warm undertones", "Medium to deep depth", "Rich and muted colors"},
		Palette: []colorseason.PaletteItem{
			{Hex: "#808000", Name: "Olive Green"},
			{Hex: "#E2725B", Name: "Terracotta"},
			{Hex: "#CC5500", Name: "Burnt Orange"},
			{Hex: "#996515", Name: "Golden Brown"},
			{Hex: "#B7410E", Name: "Rust"},
			{Hex: "#355E3B", Name: "Forest Green"},
			{Hex: "#800020", Name: "Burgundy"},
			{Hex: "#FFDB58", Name: "Mustard"},
		},
		Recommendations: colorseason.Recommendations{
			Clothing: []string{
				"Olive green jackets and pants",
				"Terracotta sweaters and tops",
				"Burnt orange dresses and scarves",
				"Golden brown coats and blazers",
				"Rust-colored accessories",
			},
			Makeup: []string{
				"Warm peach or bronze blush",
				"Golden brown or copper eyeshadow",
				"Warm red or brown lipstick",
				"Golden bronze highlighter",
				"Warm brown eyeliner and mascara",
			},
			Accessories: []string{
				"Gold or copper jewelry",
				"Warm brown leather goods",
				"Olive or rust scarves",
				"Golden brown belts",
				"Amber or wooden accessories",
			},
		},
	},
	{
		Name:            "Winter",
		Description:     "Bold, cool, and dramatic colors that match your striking natural contrast",
		Characteristics: []string{"Cool undertones", "High contrast", "Bold and clear colors"},
		Palette: []colorseason.PaletteItem{
			{Hex: "#000080", Name: "Navy Blue"},
			{Hex: "#50C878", Name: "Emerald Green"},
			{Hex: "#FF0000", Name: "True Red"},
			{Hex: "#7851A9", Name: "Royal Purple"},
			{Hex: "#000000", Name: "Black"},
			{Hex: "#FFFFFF", Name: "Pure White"},
			{Hex: "#FF1493", Name: "Hot Pink"},
			{Hex: "#99CCFF", Name: "Icy Blue"},
		},
		Recommendations: colorseason.Recommendations{
			Clothing: []string{
				"Navy blue suits and dresses",
				"Emerald green blouses and tops",
				"True red statement pieces",
				"Royal purple evening wear",
				"Black and white classics",
			},
			Makeup: []string{
				"Cool pink or berry blush",
				"Navy, silver, or purple eyeshadow",
				"True red or berry lipstick",
				"Silver or icy highlighter",
				"Black or dark brown eyeliner",
			},
			Accessories: []string{
				"Silver or platinum jewelry",
				"Black or navy handbags",
				"Bold colored scarves",
				"Black or silver belts",
				"Statement gemstone pieces",
			},
		},
	},
}
