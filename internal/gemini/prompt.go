package gemini

import (
	"strings"

	"google.golang.org/genai"
)

const (
	minPaletteColors = 5
	maxPaletteColors = 7
)

// Instruction is the fixed analysis prompt sent alongside every image.
var Instruction = strings.Join([]string{
	"You are a world-class personal color analyst. Your goal is to analyze the user's selfie to determine their color season.",
	"1.  Carefully analyze the user's skin undertones (warm/yellow-based or cool/blue-based), hair color (warmth, coolness, saturation), and eye color from the provided image.",
	"2.  Based on this analysis, classify the user into one of the four primary color seasons: Winter, Summer, Spring, or Autumn.",
	"3.  Provide a representative color palette for that season, consisting of 5-7 key colors.",
	"4.  Write a concise, one-paragraph explanation for your classification, referencing the user's likely features.",
	"5.  Provide a list of tailored recommendations for clothing colors, makeup shades, and accessory types that would be most flattering for their season.",
	"",
	"Return your complete analysis ONLY in the specified JSON format. Ensure the image is a photo of a person before proceeding.",
}, "\n")

// ResponseSchema describes the JSON document the model must return.
func ResponseSchema() *genai.Schema {
	stringList := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: description,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"season": {
				Type:        genai.TypeString,
				Description: "The user's color season, e.g., 'Spring', 'Summer', 'Autumn', 'Winter'.",
			},
			"palette": {
				Type:        genai.TypeArray,
				Description: "An array of 5-7 dominant colors for the season.",
				MinItems:    genai.Ptr[int64](minPaletteColors),
				MaxItems:    genai.Ptr[int64](maxPaletteColors),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"hex": {
							Type:        genai.TypeString,
							Description: "The hex code of the color, e.g., '#FF7F50'.",
						},
						"name": {
							Type:        genai.TypeString,
							Description: "A common name for the color, e.g., 'Coral'.",
						},
					},
					Required:         []string{"hex", "name"},
					PropertyOrdering: []string{"hex", "name"},
				},
			},
			"explanation": {
				Type:        genai.TypeString,
				Description: "A brief explanation of why the user fits into this season, based on their features.",
			},
			"recommendations": {
				Type:        genai.TypeObject,
				Description: "Tailored recommendations for the user.",
				Properties: map[string]*genai.Schema{
					"clothing":    stringList("List of recommended clothing colors or items."),
					"makeup":      stringList("List of recommended makeup shades."),
					"accessories": stringList("List of recommended accessories or jewelry types."),
				},
				Required:         []string{"clothing", "makeup", "accessories"},
				PropertyOrdering: []string{"clothing", "makeup", "accessories"},
			},
		},
		Required:         []string{"season", "palette", "explanation", "recommendations"},
		PropertyOrdering: []string{"season", "palette", "explanation", "recommendations"},
	}
}
