package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/color-season/internal/imagepayload"
	"github.com/example/color-season/internal/usecase"
)

// ErrorResponse is the status and user-facing message for a failed request.
type ErrorResponse struct {
	StatusCode int
	Message    string
}

const (
	msgMissingConfiguration = "Server configuration error: Missing API Key. Please check the server logs and ensure the GEMINI_API_KEY is set in your environment variables."
	msgMissingFields        = "Missing image data or mime type."
	msgUnsupportedMIME      = "Unsupported file type. Please upload an image."
	msgInvalidEncoding      = "The image data could not be decoded. Please upload the image again."
	msgInvalidBody          = "Invalid request body."
	msgPayloadTooLarge      = "The image is too large. Please upload a smaller photo."
	msgRejectedInput        = "The image could not be processed due to safety settings. Please try a different image."
	msgEmptyResponse        = "The model returned an empty response. Please try a different image."
	msgMalformedResponse    = "The model returned an invalid response format. Please try again."
	msgUpstream             = "An error occurred while communicating with the AI model. Please try again later."
)

// MapError maps analysis errors to HTTP responses. Underlying error text is
// never exposed to the client.
func MapError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrMissingConfiguration):
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: msgMissingConfiguration}
	case errors.Is(err, usecase.ErrPayloadTooLarge):
		return ErrorResponse{StatusCode: http.StatusRequestEntityTooLarge, Message: msgPayloadTooLarge}
	case errors.Is(err, imagepayload.ErrMissingData), errors.Is(err, imagepayload.ErrMissingMIMEType):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: msgMissingFields}
	case errors.Is(err, imagepayload.ErrUnsupportedMIME):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: msgUnsupportedMIME}
	case errors.Is(err, imagepayload.ErrInvalidEncoding):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: msgInvalidEncoding}
	case errors.Is(err, usecase.ErrInvalidInput):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: msgInvalidBody}
	case errors.Is(err, usecase.ErrRejectedInput):
		return ErrorResponse{StatusCode: http.StatusBadRequest, Message: msgRejectedInput}
	case errors.Is(err, usecase.ErrEmptyResponse):
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: msgEmptyResponse}
	case errors.Is(err, usecase.ErrMalformedResponse):
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: msgMalformedResponse}
	default:
		return ErrorResponse{StatusCode: http.StatusInternalServerError, Message: msgUpstream}
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := MapError(err)
	c.JSON(resp.StatusCode, gin.H{"error": resp.Message})
}
