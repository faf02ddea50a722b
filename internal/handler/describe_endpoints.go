package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"sseol-server/internal/describer"
	"sseol-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imagesFormField = "images[]"

// describeImages принимает multipart-форму с полем images[] и возвращает
// по одному описанию на файл в порядке загрузки.
func (h *Handler) describeImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendJSONError(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	files := form.File[imagesFormField]
	if len(files) == 0 {
		sendJSONError(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("No files in %q field", imagesFormField))
		return
	}

	images := make([]describer.Image, 0, len(files))
	for i, fh := range files {
		if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
			sendJSONError(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
				fmt.Sprintf("File %d (%s) exceeds %d bytes", i, fh.Filename, h.maxUploadBytes))
			return
		}
		img, err := readImage(fh)
		if err != nil {
			sendJSONError(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("Cannot read file %d: %v", i, err))
			return
		}
		if !strings.HasPrefix(img.MIMEType, "image/") {
			sendJSONError(c, http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia,
				fmt.Sprintf("File %d (%s) is %s, not an image", i, fh.Filename, img.MIMEType))
			return
		}
		images = append(images, img)
	}

	batchID := uuid.New().String()
	h.logger.Info("Describing image batch",
		zap.String("batch_id", batchID),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Int("images", len(images)),
	)

	descriptors := h.describer.DescribeAll(c.Request.Context(), images)
	c.JSON(http.StatusOK, describeImagesResponse{Descriptors: descriptors})
}

// readImage читает файл целиком. Тип берётся из заголовка части, а если он
// пустой или общий - определяется по содержимому.
func readImage(fh *multipart.FileHeader) (describer.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return describer.Image{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return describer.Image{}, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return describer.Image{Name: fh.Filename, MIMEType: mimeType, Data: data}, nil
}
