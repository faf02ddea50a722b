package handler

import (
	"fmt"
	"net/http"

	"sseol-server/internal/domain"
	"sseol-server/internal/scenes"

	"github.com/gin-gonic/gin"
)

// placeImages принимает сцены и описания изображений и возвращает размещения.
// Конвейер сам по себе не падает, поэтому 200 приходит и при недоступной модели.
func (h *Handler) placeImages(c *gin.Context) {
	var req domain.PlaceImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendJSONError(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request data: "+err.Error())
		return
	}
	if err := validatePlaceImagesRequest(req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	result := h.placer.PlaceImages(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

// validatePlaceImagesRequest проверяет, что index каждого описания совпадает с его позицией.
// Индексы сцен и реплик не проверяются: конвейер работает по позициям.
func validatePlaceImagesRequest(req domain.PlaceImagesRequest) error {
	for i, d := range req.ImageDescriptors {
		if d.Index != i {
			return fmt.Errorf("%w: imageDescriptors[%d] has index %d", domain.ErrInvalidRequest, i, d.Index)
		}
	}
	return nil
}

func (h *Handler) parseScenes(c *gin.Context) {
	var req parseScenesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendJSONError(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request data: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, parseScenesResponse{Scenes: scenes.Parse(req.Text)})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
