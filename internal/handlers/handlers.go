package handlers

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/color-season/internal/imagepayload"
	"github.com/example/color-season/internal/middleware"
	"github.com/example/color-season/internal/seasons"
	"github.com/example/color-season/internal/usecase"
)

// bodyOverhead leaves room for the JSON framing and a data URL header around
// the base64 payload.
const bodyOverhead = 64 << 10

//go:embed static/index.html
var indexHTML []byte

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, uc *usecase.AnalysisUseCase, catalog *seasons.Catalog) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"model_configured": uc.Configured(),
		})
	})

	router.POST("/api/analyze", func(c *gin.Context) {
		requestID := c.GetString(middleware.RequestIDKey)

		if !uc.Configured() {
			respondError(c, usecase.ErrMissingConfiguration)
			return
		}

		limit := int64(imagepayload.EncodedLimit(uc.MaxImageBytes()) + bodyOverhead)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		var input usecase.AnalyzeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, usecase.ErrPayloadTooLarge)
				return
			}
			respondError(c, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}

		analysis, err := uc.Analyze(c.Request.Context(), requestID, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, analysis)
	})

	router.GET("/api/seasons", func(c *gin.Context) {
		c.JSON(http.StatusOK, catalog.All())
	})

	router.GET("/api/seasons/:season", func(c *gin.Context) {
		season, ok := catalog.Lookup(c.Param("season"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown season. Expected Spring, Summer, Autumn or Winter."})
			return
		}
		c.JSON(http.StatusOK, season)
	})
}
