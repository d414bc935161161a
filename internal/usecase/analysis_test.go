package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/color-season/internal/colorseason"
	"github.com/example/color-season/internal/imagepayload"
	"github.com/example/color-season/internal/logging"
	"github.com/example/color-season/internal/metrics"
)

const validReply = `{"season":"Winter","palette":[{"hex":"#000080","name":"Navy Blue"},{"hex":"#50C878","name":"Emerald Green"},{"hex":"#FF0000","name":"True Red"},{"hex":"#7851A9","name":"Royal Purple"},{"hex":"#000000","name":"Black"},{"hex":"#FFFFFF","name":"Pure White"}],"explanation":"Cool undertones.","recommendations":{"clothing":["Navy suit"],"makeup":["Red lipstick"],"accessories":["Silver jewelry"]}}`

type stubClassifier struct {
	text   string
	err    error
	calls  int
	images []*imagepayload.Image
	ctxErr error
}

func (s *stubClassifier) Classify(ctx context.Context, img *imagepayload.Image) (string, error) {
	s.calls++
	s.images = append(s.images, img)
	s.ctxErr = ctx.Err()
	return s.text, s.err
}

var imageData = []byte("\xFF\xD8\xFF\xE0 fake jpeg bytes")

func validInput() AnalyzeInput {
	return AnalyzeInput{
		Base64ImageData: base64.StdEncoding.EncodeToString(imageData),
		MimeType:        "image/jpeg",
	}
}

func newUseCase(classifier colorseason.Classifier) *AnalysisUseCase {
	return NewAnalysisUseCase(classifier, zap.NewNop(), 1<<20, time.Second)
}

func TestAnalyzeReturnsParsedAnalysis(t *testing.T) {
	classifier := &stubClassifier{text: validReply}
	uc := newUseCase(classifier)

	analysis, err := uc.Analyze(context.Background(), "req-1", validInput())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if analysis.Season != "Winter" {
		t.Fatalf("unexpected season: %s", analysis.Season)
	}
	if len(analysis.Palette) != 6 {
		t.Fatalf("expected 6 palette colors, got %d", len(analysis.Palette))
	}
	if classifier.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", classifier.calls)
	}
	if string(classifier.images[0].Data) != string(imageData) {
		t.Fatal("expected decoded image bytes to reach the classifier")
	}
	if classifier.images[0].MIMEType != "image/jpeg" {
		t.Fatalf("unexpected mime type: %s", classifier.images[0].MIMEType)
	}
}

func TestAnalyzeWithoutClassifierFailsRegardlessOfInput(t *testing.T) {
	uc := newUseCase(nil)

	for _, input := range []AnalyzeInput{validInput(), {}} {
		_, err := uc.Analyze(context.Background(), "req-2", input)
		if !errors.Is(err, ErrMissingConfiguration) {
			t.Fatalf("expected ErrMissingConfiguration, got %v", err)
		}
	}
	if uc.Configured() {
		t.Fatal("expected use case to report missing configuration")
	}
}

func TestAnalyzeRejectsInvalidInputWithoutCallingModel(t *testing.T) {
	tests := []struct {
		name  string
		input AnalyzeInput
		want  error
	}{
		{name: "missing data", input: AnalyzeInput{MimeType: "image/png"}, want: ErrInvalidInput},
		{name: "missing mime", input: AnalyzeInput{Base64ImageData: "aGVsbG8="}, want: ErrInvalidInput},
		{name: "not an image", input: AnalyzeInput{Base64ImageData: "aGVsbG8=", MimeType: "text/plain"}, want: ErrInvalidInput},
		{name: "bad base64", input: AnalyzeInput{Base64ImageData: "%%%", MimeType: "image/png"}, want: ErrInvalidInput},
		{name: "too large", input: AnalyzeInput{Base64ImageData: strings.Repeat("A", 4<<20), MimeType: "image/png"}, want: ErrPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &stubClassifier{text: validReply}
			uc := newUseCase(classifier)

			_, err := uc.Analyze(context.Background(), "req-3", tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if classifier.calls != 0 {
				t.Fatalf("expected no model call, got %d", classifier.calls)
			}
		})
	}
}

func TestAnalyzeMapsClassifierFailures(t *testing.T) {
	tests := []struct {
		name       string
		classifier *stubClassifier
		want       error
	}{
		{name: "empty text", classifier: &stubClassifier{text: ""}, want: ErrEmptyResponse},
		{name: "whitespace text", classifier: &stubClassifier{text: "  \n"}, want: ErrEmptyResponse},
		{name: "invalid json", classifier: &stubClassifier{text: "not json at all"}, want: ErrMalformedResponse},
		{name: "incomplete json", classifier: &stubClassifier{text: `{"season":"Winter"}`}, want: ErrMalformedResponse},
		{name: "safety block", classifier: &stubClassifier{err: colorseason.ErrSafetyBlocked}, want: ErrRejectedInput},
		{name: "transport error", classifier: &stubClassifier{err: errors.New("connection reset")}, want: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.classifier)

			analysis, err := uc.Analyze(context.Background(), "req-4", validInput())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if analysis != nil {
				t.Fatalf("expected no partial result, got %+v", analysis)
			}
			var opErr *logging.OperationError
			if !errors.As(err, &opErr) {
				t.Fatalf("expected OperationError, got %T", err)
			}
			if opErr.RequestID != "req-4" {
				t.Fatalf("unexpected request id: %s", opErr.RequestID)
			}
			if tt.classifier.calls != 1 {
				t.Fatalf("expected exactly one model call, got %d", tt.classifier.calls)
			}
		})
	}
}

func TestAnalyzeDetachesModelCallFromCallerCancellation(t *testing.T) {
	classifier := &stubClassifier{text: validReply}
	uc := newUseCase(classifier)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.Analyze(ctx, "req-5", validInput()); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if classifier.ctxErr != nil {
		t.Fatalf("expected model call context to be live, got %v", classifier.ctxErr)
	}
}

func TestAnalyzeNeverLogsImageContent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	uc := NewAnalysisUseCase(&stubClassifier{text: "garbage"}, zap.New(core), 1<<20, time.Second)
	input := validInput()

	_, _ = uc.Analyze(context.Background(), "req-6", input)

	var sawRawText bool
	for _, entry := range logs.All() {
		for key, value := range entry.ContextMap() {
			str, ok := value.(string)
			if !ok {
				continue
			}
			if strings.Contains(str, input.Base64ImageData) || strings.Contains(str, string(imageData)) {
				t.Fatalf("log field %q contains image content", key)
			}
			if key == "response_text" && str == "garbage" {
				sawRawText = true
			}
		}
	}
	if !sawRawText {
		t.Fatal("expected the malformed model reply to be logged for diagnosis")
	}
}

func TestAnalyzeDownscalesLargeImages(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 300, 150))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	input := AnalyzeInput{
		Base64ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:        "image/png",
	}

	classifier := &stubClassifier{text: validReply}
	uc := newUseCase(classifier).WithMaxDimension(60)

	if _, err := uc.Analyze(context.Background(), "req-9", input); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	meta, ok := classifier.images[0].Inspect()
	if !ok {
		t.Fatal("expected forwarded image to be decodable")
	}
	if meta.Width != 60 || meta.Height != 30 {
		t.Fatalf("expected 60x30 image, got %dx%d", meta.Width, meta.Height)
	}
}

func TestAnalyzeRecordsOutcomeMetrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	uc := newUseCase(&stubClassifier{text: "not json"}).WithMetrics(recorder)

	_, _ = uc.Analyze(context.Background(), "req-10", validInput())
	_, _ = uc.Analyze(context.Background(), "req-11", AnalyzeInput{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	for _, want := range []string{
		`color_season_analyses_total{outcome="malformed_response"} 1`,
		`color_season_analyses_total{outcome="invalid_input"} 1`,
		`color_season_model_call_duration_seconds_count 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q, got:\n%s", want, body)
		}
	}
}
