// Package usecase implements catalog operations.
package usecase

import "errors"

var (
	// ErrProductNotFound is returned for unknown or malformed product ids.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidInput wraps validation failures on create and update.
	ErrInvalidInput = errors.New("invalid product input")

	// ErrImageRequired is returned when create is called without an image.
	ErrImageRequired = errors.New("product image is required")

	// ErrImageUpload is returned when the media store rejects an upload.
	ErrImageUpload = errors.New("image upload failed")
)
