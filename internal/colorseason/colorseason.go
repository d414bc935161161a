package colorseason

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/example/color-season/internal/imagepayload"
)

// ErrSafetyBlocked is returned by a Classifier when the model refused the
// input on content-safety grounds.
var ErrSafetyBlocked = errors.New("SAFETY: input blocked by the model")

// Classifier exposes the single model call used by the analysis flow. It
// returns the raw text of the model reply, which may be empty.
type Classifier interface {
	Classify(ctx context.Context, img *imagepayload.Image) (string, error)
}

// PaletteItem is one flattering colour.
type PaletteItem struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// Recommendations groups the styling advice for a season.
type Recommendations struct {
	Clothing    []string `json:"clothing"`
	Makeup      []string `json:"makeup"`
	Accessories []string `json:"accessories"`
}

// ColorAnalysis is the structured result of one classification.
type ColorAnalysis struct {
	Season          string          `json:"season"`
	Palette         []PaletteItem   `json:"palette"`
	Explanation     string          `json:"explanation"`
	Recommendations Recommendations `json:"recommendations"`
}

// Parse decodes a model reply and checks that every required member is present.
func Parse(text string) (*ColorAnalysis, error) {
	var analysis ColorAnalysis
	decoder := json.NewDecoder(strings.NewReader(text))
	if err := decoder.Decode(&analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("decode analysis: trailing data after JSON object")
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Validate reports the first missing required member. Season is free text and
// palette length is requested from the model rather than enforced.
func (a *ColorAnalysis) Validate() error {
	if strings.TrimSpace(a.Season) == "" {
		return errors.New("analysis: season is empty")
	}
	if len(a.Palette) == 0 {
		return errors.New("analysis: palette is empty")
	}
	for i, item := range a.Palette {
		if strings.TrimSpace(item.Hex) == "" || strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("analysis: palette item %d lacks hex or name", i)
		}
	}
	switch {
	case a.Recommendations.Clothing == nil:
		return errors.New("analysis: recommendations.clothing is missing")
	case a.Recommendations.Makeup == nil:
		return errors.New("analysis: recommendations.makeup is missing")
	case a.Recommendations.Accessories == nil:
		return errors.New("analysis: recommendations.accessories is missing")
	}
	return nil
}

// IsEmpty reports whether a model reply carries no usable text.
func IsEmpty(text string) bool {
	return strings.TrimSpace(text) == ""
}
