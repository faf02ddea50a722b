package handler

import "sseol-server/internal/domain"

// Коды ошибок API
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_error"
	ErrCodePayloadTooLarge  = "payload_too_large"
	ErrCodeUnsupportedMedia = "unsupported_media_type"
	ErrCodeInternal         = "internal_error"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type parseScenesRequest struct {
	Text string `json:"text"`
}

type parseScenesResponse struct {
	Scenes []domain.Scene `json:"scenes"`
}

type describeImagesResponse struct {
	Descriptors []domain.ImageDescriptor `json:"descriptors"`
}
