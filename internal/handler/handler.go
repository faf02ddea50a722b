package handler

import (
	"context"

	"sseol-server/internal/describer"
	"sseol-server/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Placer - конвейер размещения изображений.
type Placer interface {
	PlaceImages(ctx context.Context, req domain.PlaceImagesRequest) domain.PlaceImagesResult
}

// BatchDescriber описывает пачку загруженных изображений.
type BatchDescriber interface {
	DescribeAll(ctx context.Context, images []describer.Image) []domain.ImageDescriptor
}

// Handler обслуживает HTTP API сервиса размещения.
type Handler struct {
	placer         Placer
	describer      BatchDescriber
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(placer Placer, describer BatchDescriber, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		placer:         placer,
		describer:      describer,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.Named("Handler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	api := router.Group("/api/v1")
	{
		api.POST("/placements", h.placeImages)
		api.POST("/images/describe", h.describeImages)
		api.POST("/scenes/parse", h.parseScenes)
	}
}
