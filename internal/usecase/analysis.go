package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/color-season/internal/colorseason"
	"github.com/example/color-season/internal/imagepayload"
	"github.com/example/color-season/internal/logging"
	"github.com/example/color-season/internal/metrics"
)

var (
	ErrMissingConfiguration = errors.New("model credential is not configured")
	ErrInvalidInput         = errors.New("invalid input")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrRejectedInput        = errors.New("input rejected by content safety")
	ErrEmptyResponse        = errors.New("model returned an empty response")
	ErrMalformedResponse    = errors.New("model returned a malformed response")
	ErrUpstream             = errors.New("model call failed")
)

// AnalyzeInput mirrors the wire request of the analyze endpoint.
type AnalyzeInput struct {
	Base64ImageData string `json:"base64ImageData"`
	MimeType        string `json:"mimeType"`
}

// AnalysisUseCase validates an upload, makes exactly one model call and
// returns the parsed analysis. Nothing is retained between calls.
type AnalysisUseCase struct {
	classifier    colorseason.Classifier
	logger        *zap.Logger
	maxImageBytes int
	maxDimension  int
	timeout       time.Duration
	metrics       *metrics.Recorder
}

// NewAnalysisUseCase constructs the use case. A nil classifier means no
// credential was configured and every call fails with ErrMissingConfiguration.
func NewAnalysisUseCase(classifier colorseason.Classifier, logger *zap.Logger, maxImageBytes int, timeout time.Duration) *AnalysisUseCase {
	return &AnalysisUseCase{
		classifier:    classifier,
		logger:        logger.Named("analysis_usecase"),
		maxImageBytes: maxImageBytes,
		timeout:       timeout,
	}
}

// WithMaxDimension enables downscaling of uploads whose longest side exceeds
// maxDim pixels before they are sent to the model. Zero disables it.
func (uc *AnalysisUseCase) WithMaxDimension(maxDim int) *AnalysisUseCase {
	uc.maxDimension = maxDim
	return uc
}

// WithMetrics records outcome counters and model latency on recorder.
func (uc *AnalysisUseCase) WithMetrics(recorder *metrics.Recorder) *AnalysisUseCase {
	uc.metrics = recorder
	return uc
}

// Configured reports whether the model client is available.
func (uc *AnalysisUseCase) Configured() bool {
	return uc.classifier != nil
}

// MaxImageBytes is the largest decoded upload accepted.
func (uc *AnalysisUseCase) MaxImageBytes() int {
	return uc.maxImageBytes
}

// Analyze runs the full adapter flow for one upload.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, requestID string, input AnalyzeInput) (*colorseason.ColorAnalysis, error) {
	started := time.Now()
	analysis, err := uc.analyze(ctx, requestID, input)
	uc.metrics.ObserveAnalysis(outcome(err), time.Since(started))
	return analysis, err
}

func (uc *AnalysisUseCase) analyze(ctx context.Context, requestID string, input AnalyzeInput) (*colorseason.ColorAnalysis, error) {
	opLogger := logging.WithOperation(uc.logger, "usecase.analyze", requestID)

	if !uc.Configured() {
		opLogger.Error("analysis requested without a model credential")
		return nil, logging.NewOperationError("usecase.check_configuration", requestID, ErrMissingConfiguration)
	}

	img, err := imagepayload.Decode(input.Base64ImageData, input.MimeType, uc.maxImageBytes)
	if err != nil {
		sentinel := ErrInvalidInput
		if errors.Is(err, imagepayload.ErrTooLarge) {
			sentinel = ErrPayloadTooLarge
		}
		opLogger.Warn("rejected upload", zap.Error(err), zap.String("mime_type", input.MimeType))
		return nil, logging.NewOperationError("usecase.decode_image", requestID, fmt.Errorf("%w: %w", sentinel, err))
	}

	fields := []zap.Field{zap.String("mime_type", img.MIMEType), zap.Int("image_bytes", img.Size())}
	if meta, ok := img.Inspect(); ok {
		fields = append(fields, zap.String("format", meta.Format), zap.Int("width", meta.Width), zap.Int("height", meta.Height))
	}
	opLogger.Info("submitting image for analysis", fields...)

	if resized, ok, err := img.Downscale(uc.maxDimension); err != nil {
		opLogger.Warn("downscale failed, forwarding original image", zap.Error(err))
	} else if ok {
		opLogger.Debug("downscaled image",
			zap.Int("max_dimension", uc.maxDimension),
			zap.Int("image_bytes", resized.Size()),
			zap.String("mime_type", resized.MIMEType))
		img = resized
	}

	// The model call runs to completion even if the client goes away.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.timeout)
	defer cancel()

	started := time.Now()
	text, err := uc.classifier.Classify(callCtx, img)
	latency := time.Since(started)
	uc.metrics.ObserveModelCall(latency)
	if err != nil {
		if errors.Is(err, colorseason.ErrSafetyBlocked) {
			opLogger.Warn("model rejected image on safety grounds", zap.Error(err), zap.Duration("latency", latency))
			return nil, logging.NewOperationError("usecase.classify", requestID, fmt.Errorf("%w: %w", ErrRejectedInput, err))
		}
		opLogger.Error("model call failed", zap.Error(err), zap.Duration("latency", latency))
		return nil, logging.NewOperationError("usecase.classify", requestID, fmt.Errorf("%w: %w", ErrUpstream, err))
	}

	if colorseason.IsEmpty(text) {
		opLogger.Error("model returned no text", zap.Duration("latency", latency))
		return nil, logging.NewOperationError("usecase.classify", requestID, ErrEmptyResponse)
	}

	analysis, err := colorseason.Parse(text)
	if err != nil {
		opLogger.Error("failed to parse model response", zap.Error(err), zap.String("response_text", text))
		return nil, logging.NewOperationError("usecase.parse_response", requestID, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}

	opLogger.Info("analysis complete",
		zap.String("season", analysis.Season),
		zap.Int("palette_size", len(analysis.Palette)),
		zap.Duration("latency", latency))
	return analysis, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrMissingConfiguration):
		return metrics.OutcomeMissingConfiguration
	case errors.Is(err, ErrPayloadTooLarge):
		return metrics.OutcomePayloadTooLarge
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrRejectedInput):
		return metrics.OutcomeRejectedInput
	case errors.Is(err, ErrEmptyResponse):
		return metrics.OutcomeEmptyResponse
	case errors.Is(err, ErrMalformedResponse):
		return metrics.OutcomeMalformedResponse
	default:
		return metrics.OutcomeUpstreamError
	}
}
