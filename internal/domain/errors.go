package domain

import "errors"

var (
	// ErrOracleUnavailable - сетевая ошибка, неуспешный статус или ошибка авторизации при вызове модели.
	ErrOracleUnavailable = errors.New("placement oracle unavailable")
	// ErrMalformedResponse - ответ модели не JSON или в нём нет массива placements.
	ErrMalformedResponse = errors.New("malformed oracle response")
	// ErrInvalidRequest - запрос клиента не прошёл проверку.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDescribeFailed - не удалось получить описание изображения.
	ErrDescribeFailed = errors.New("image description failed")
	// ErrCacheMiss - описания нет в кэше.
	ErrCacheMiss = errors.New("cache miss")
)
