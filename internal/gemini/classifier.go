package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/example/color-season/internal/colorseason"
	"github.com/example/color-season/internal/config"
	"github.com/example/color-season/internal/imagepayload"
	"github.com/example/color-season/internal/logging"
)

// NewClient builds a Gemini API client from the service configuration.
func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, logging.NewOperationError("gemini.new_client", "", err)
	}
	return client, nil
}

// Classifier asks a Gemini model for a color-season analysis of one image.
type Classifier struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewClassifier wraps a genai client. The client is safe for concurrent use.
func NewClassifier(client *genai.Client, cfg *config.GeminiConfig, logger *zap.Logger) *Classifier {
	return &Classifier{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger.Named("gemini_classifier"),
	}
}

// Classify sends the image and the fixed instruction in structured-output mode
// and returns the reply text. Safety refusals surface as colorseason.ErrSafetyBlocked.
func (c *Classifier) Classify(ctx context.Context, img *imagepayload.Image) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIMEType),
			genai.NewPartFromText(Instruction),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.generationConfig())
	if err != nil {
		if strings.Contains(strings.ToUpper(err.Error()), "SAFETY") {
			return "", fmt.Errorf("%w: %v", colorseason.ErrSafetyBlocked, err)
		}
		wrapped := logging.NewOperationError("gemini.generate_content", "", err)
		c.logger.Error("model call failed", zap.Error(wrapped), zap.String("model", c.model))
		return "", wrapped
	}

	if reason := blockReason(resp); reason != "" {
		c.logger.Warn("model refused input", zap.String("reason", reason), zap.String("model", c.model))
		return "", fmt.Errorf("%w: %s", colorseason.ErrSafetyBlocked, reason)
	}

	return resp.Text(), nil
}

func (c *Classifier) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
}

// blockReason returns the safety reason of a refused reply, or "".
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return string(fb.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		switch reason := string(resp.Candidates[0].FinishReason); reason {
		case "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST", "SPII":
			return reason
		}
	}
	return ""
}
