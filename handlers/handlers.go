package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"menu-analyze-service/models"
	"menu-analyze-service/openai"
	"menu-analyze-service/service"
)

// Handlers represents the HTTP handlers.
type Handlers struct {
	service *service.Service
}

// NewHandlers creates new HTTP handlers.
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// HealthCheck handles health check requests.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "menu-analyze-service",
	})
}

// AnalyzeMenu accepts a multipart form with target_language (required),
// optional ocr_text, currency and allergy_info fields, and zero or more
// image uploads. It returns the structured menu result on success, a 400 for
// client input problems, and a 502 carrying the raw provider response when
// the model fails to return a structured call.
func (h *Handlers) AnalyzeMenu(c *gin.Context) {
	targetLanguage := c.PostForm("target_language")
	if targetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "target_language is required",
		})
		return
	}

	req := &models.AnalyzeRequest{
		TargetLanguage: targetLanguage,
		UserAllergies:  models.ParseAllergies(c.PostForm("allergy_info")),
		OCRText:        c.PostForm("ocr_text"),
		Currency:       c.PostForm("currency"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid multipart form",
		})
		return
	}

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "failed to open uploaded image " + fh.Filename,
			})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "failed to read uploaded image " + fh.Filename,
			})
			return
		}

		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "image/jpeg"
		}
		req.Images = append(req.Images, models.ImageInput{Data: data, MimeType: mime})
	}

	result, err := h.service.AnalyzeMenu(c.Request.Context(), req)
	if err != nil {
		log.Warnf("Menu analysis failed: %v", err)

		var noCall *openai.NoToolCallError
		if errors.As(err, &noCall) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "No tool call returned",
				"raw":   json.RawMessage(noCall.Raw),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
